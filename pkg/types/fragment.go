package types

import (
	"encoding/json"

	"github.com/arthur-debert/flatcompose/pkg/globs"
)

// Fragment is one flat-config object.
type Fragment struct {
	// Name is optional but unique within a composed list when present
	Name string

	// Files scopes the fragment; nil means it applies to every file
	Files []string

	// Ignores excludes paths; a fragment with nothing but ignores is a
	// global ignore list
	Ignores []string

	// Plugins registers plugin handles under their namespace
	Plugins map[string]*PluginDefinition

	// Rules in the order they were set
	Rules *Rules

	LanguageOptions *LanguageOptions
	LinterOptions   map[string]interface{}
	Processor       *Processor
	Settings        map[string]interface{}
}

// IsGlobalIgnore reports whether the fragment only carries ignores.
func (f Fragment) IsGlobalIgnore() bool {
	return len(f.Ignores) > 0 &&
		f.Files == nil &&
		len(f.Plugins) == 0 &&
		f.Rules.Len() == 0 &&
		f.LanguageOptions == nil &&
		len(f.LinterOptions) == 0 &&
		f.Processor == nil &&
		len(f.Settings) == 0
}

// Matches is the activation predicate for a single fragment: the path is
// covered by Files (or Files is absent) and not excluded by Ignores. Global
// ignore fragments never match; they act on the whole list instead.
func (f Fragment) Matches(path string) bool {
	if f.IsGlobalIgnore() {
		return false
	}
	if f.Files != nil && !globs.Any(f.Files, path) {
		return false
	}
	return !globs.Ignored(f.Ignores, path)
}

// Clone returns a copy that shares nothing mutable with f except plugin
// handles, which are immutable.
func (f Fragment) Clone() Fragment {
	out := Fragment{
		Name:            f.Name,
		Rules:           f.Rules.Clone(),
		LanguageOptions: f.LanguageOptions.Clone(),
		LinterOptions:   cloneAnyMap(f.LinterOptions),
		Settings:        cloneAnyMap(f.Settings),
	}
	if f.Files != nil {
		out.Files = append([]string{}, f.Files...)
	}
	if f.Ignores != nil {
		out.Ignores = append([]string{}, f.Ignores...)
	}
	if f.Plugins != nil {
		out.Plugins = make(map[string]*PluginDefinition, len(f.Plugins))
		for k, v := range f.Plugins {
			out.Plugins[k] = v
		}
	}
	if f.Processor != nil {
		p := *f.Processor
		p.Merge = append([]string(nil), f.Processor.Merge...)
		out.Processor = &p
	}
	return out
}

// CloneAll clones every fragment of a list.
func CloneAll(frags []Fragment) []Fragment {
	out := make([]Fragment, len(frags))
	for i, f := range frags {
		out[i] = f.Clone()
	}
	return out
}

type fragmentWire struct {
	Name            string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Files           []string               `json:"files,omitempty" yaml:"files,omitempty"`
	Ignores         []string               `json:"ignores,omitempty" yaml:"ignores,omitempty"`
	Plugins         map[string]Ref         `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	LanguageOptions *LanguageOptions       `json:"languageOptions,omitempty" yaml:"languageOptions,omitempty"`
	LinterOptions   map[string]interface{} `json:"linterOptions,omitempty" yaml:"linterOptions,omitempty"`
	Processor       *Processor             `json:"processor,omitempty" yaml:"processor,omitempty"`
	Settings        map[string]interface{} `json:"settings,omitempty" yaml:"settings,omitempty"`
	Rules           *Rules                 `json:"rules,omitempty" yaml:"rules,omitempty"`
}

func (f Fragment) wire() fragmentWire {
	w := fragmentWire{
		Name:            f.Name,
		Files:           f.Files,
		Ignores:         f.Ignores,
		LanguageOptions: f.LanguageOptions,
		LinterOptions:   f.LinterOptions,
		Processor:       f.Processor,
		Settings:        f.Settings,
	}
	if f.Rules.Len() > 0 {
		w.Rules = f.Rules
	}
	if len(f.Plugins) > 0 {
		w.Plugins = make(map[string]Ref, len(f.Plugins))
		for ns, p := range f.Plugins {
			w.Plugins[ns] = Ref{p}
		}
	}
	return w
}

// MarshalJSON writes the flat-config shape, with plugin and parser handles
// reduced to their package ids.
func (f Fragment) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.wire())
}

func (f Fragment) MarshalYAML() (interface{}, error) {
	return f.wire(), nil
}
