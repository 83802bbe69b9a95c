package compose

import (
	"strconv"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Resolved is the effective configuration of one file: every matching
// fragment merged in list order.
type Resolved struct {
	Path string `json:"path" yaml:"path"`

	// Ignored is true when a global ignore fragment excludes the path
	Ignored bool `json:"ignored" yaml:"ignored"`

	// Fragments names the fragments that matched, in order; unnamed ones
	// appear as "#<index>"
	Fragments []string `json:"fragments" yaml:"fragments"`

	Rules     *types.Rules                       `json:"rules,omitempty" yaml:"rules,omitempty"`
	Plugins   map[string]*types.PluginDefinition `json:"-" yaml:"-"`
	Processor *types.Processor                   `json:"processor,omitempty" yaml:"processor,omitempty"`
	Settings  map[string]interface{}             `json:"settings,omitempty" yaml:"settings,omitempty"`

	LanguageOptions *types.LanguageOptions `json:"languageOptions,omitempty" yaml:"languageOptions,omitempty"`
}

// PluginIDs maps each registered namespace to its package id.
func (r *Resolved) PluginIDs() map[string]string {
	out := make(map[string]string, len(r.Plugins))
	for ns, def := range r.Plugins {
		out[ns] = def.ID
	}
	return out
}

// Resolve computes the configuration a file gets from a composed list.
// Later fragments win key by key.
func Resolve(frags []types.Fragment, path string) *Resolved {
	res := &Resolved{
		Path:    path,
		Rules:   types.NewRules(),
		Plugins: map[string]*types.PluginDefinition{},
	}

	for _, f := range frags {
		if f.IsGlobalIgnore() && globs.Ignored(f.Ignores, path) {
			res.Ignored = true
		}
	}
	if res.Ignored {
		return res
	}

	for i, f := range frags {
		if !f.Matches(path) {
			continue
		}
		name := f.Name
		if name == "" {
			name = "#" + strconv.Itoa(i)
		}
		res.Fragments = append(res.Fragments, name)

		res.Rules.Merge(f.Rules)
		for ns, def := range f.Plugins {
			res.Plugins[ns] = def
		}
		if f.Processor != nil {
			p := *f.Processor
			res.Processor = &p
		}
		for k, v := range f.Settings {
			if res.Settings == nil {
				res.Settings = map[string]interface{}{}
			}
			res.Settings[k] = types.CloneValue(v)
		}
		res.LanguageOptions = mergeLanguageOptions(res.LanguageOptions, f.LanguageOptions)
	}
	return res
}

func mergeLanguageOptions(base, over *types.LanguageOptions) *types.LanguageOptions {
	if over == nil {
		return base
	}
	if base == nil {
		return over.Clone()
	}
	out := base.Clone()
	if over.EcmaVersion != nil {
		out.EcmaVersion = over.EcmaVersion
	}
	if over.SourceType != "" {
		out.SourceType = over.SourceType
	}
	if over.Parser != nil {
		out.Parser = over.Parser
	}
	for k, v := range over.ParserOptions {
		if out.ParserOptions == nil {
			out.ParserOptions = map[string]interface{}{}
		}
		out.ParserOptions[k] = types.CloneValue(v)
	}
	for k, v := range over.Globals {
		if out.Globals == nil {
			out.Globals = map[string]string{}
		}
		out.Globals[k] = v
	}
	return out
}
