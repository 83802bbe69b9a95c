package types

import (
	"encoding/json"
)

// Kind says what a loaded package provides.
type Kind string

const (
	KindPlugin    Kind = "plugin"
	KindParser    Kind = "parser"
	KindProcessor Kind = "processor"
	KindGlobals   Kind = "globals"
)

// PluginDefinition is the handle a loader returns for a package. Fragments
// share handles by pointer; a handle is never modified after loading.
type PluginDefinition struct {
	// ID is the package identifier, e.g. "@typescript-eslint/eslint-plugin"
	ID string `yaml:"id" json:"id"`

	// Kind of the package
	Kind Kind `yaml:"kind" json:"kind"`

	// Namespace is the prefix rules of this plugin are registered under
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`

	// Bundled packages ship with the tool; the others must be installed
	Bundled bool `yaml:"bundled" json:"bundled"`

	// Configs are named rule presets, e.g. "recommended"
	Configs map[string]*Rules `yaml:"configs,omitempty" json:"configs,omitempty"`

	// Processors exposed by the package, by name
	Processors []string `yaml:"processors,omitempty" json:"processors,omitempty"`

	// Globals provided by a globals-only package, name -> readonly|writable
	Globals map[string]string `yaml:"globals,omitempty" json:"globals,omitempty"`
}

// Config returns a copy of the named preset, or an empty set.
func (p *PluginDefinition) Config(name string) *Rules {
	if p == nil {
		return NewRules()
	}
	if c, ok := p.Configs[name]; ok {
		return c.Clone()
	}
	return NewRules()
}

// HasProcessor reports whether the package exposes the named processor.
func (p *PluginDefinition) HasProcessor(name string) bool {
	if p == nil {
		return false
	}
	for _, n := range p.Processors {
		if n == name {
			return true
		}
	}
	return false
}

// Ref is how a handle is written inside a fragment: just its package id.
type Ref struct {
	*PluginDefinition
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.PluginDefinition == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

func (r Ref) MarshalYAML() (interface{}, error) {
	if r.PluginDefinition == nil {
		return nil, nil
	}
	return r.ID, nil
}

// Processor is the transform applied to files before linting. Several
// processors can be chained, e.g. a framework's block extractor followed by
// the framework processor itself.
type Processor struct {
	Name  string   `yaml:"name" json:"name"`
	Merge []string `yaml:"merge,omitempty" json:"merge,omitempty"`
}

// MergeProcessors chains named processors into one handle.
func MergeProcessors(names ...string) *Processor {
	if len(names) == 1 {
		return &Processor{Name: names[0]}
	}
	out := &Processor{Name: "merged"}
	out.Merge = append(out.Merge, names...)
	return out
}

// LanguageOptions is the parser and environment part of a fragment.
type LanguageOptions struct {
	EcmaVersion   interface{}            `yaml:"ecmaVersion,omitempty" json:"ecmaVersion,omitempty"`
	SourceType    string                 `yaml:"sourceType,omitempty" json:"sourceType,omitempty"`
	Parser        *PluginDefinition      `yaml:"-" json:"-"`
	ParserOptions map[string]interface{} `yaml:"parserOptions,omitempty" json:"parserOptions,omitempty"`
	Globals       map[string]string      `yaml:"globals,omitempty" json:"globals,omitempty"`
}

// languageOptionsWire adds the parser as a package reference.
type languageOptionsWire struct {
	EcmaVersion   interface{}            `yaml:"ecmaVersion,omitempty" json:"ecmaVersion,omitempty"`
	SourceType    string                 `yaml:"sourceType,omitempty" json:"sourceType,omitempty"`
	Parser        *Ref                   `yaml:"parser,omitempty" json:"parser,omitempty"`
	ParserOptions map[string]interface{} `yaml:"parserOptions,omitempty" json:"parserOptions,omitempty"`
	Globals       map[string]string      `yaml:"globals,omitempty" json:"globals,omitempty"`
}

func (lo *LanguageOptions) wire() languageOptionsWire {
	w := languageOptionsWire{
		EcmaVersion:   lo.EcmaVersion,
		SourceType:    lo.SourceType,
		ParserOptions: lo.ParserOptions,
		Globals:       lo.Globals,
	}
	if lo.Parser != nil {
		w.Parser = &Ref{lo.Parser}
	}
	return w
}

func (lo *LanguageOptions) MarshalJSON() ([]byte, error) {
	return json.Marshal(lo.wire())
}

func (lo *LanguageOptions) MarshalYAML() (interface{}, error) {
	return lo.wire(), nil
}

// Clone copies the maps; the parser handle is shared.
func (lo *LanguageOptions) Clone() *LanguageOptions {
	if lo == nil {
		return nil
	}
	out := *lo
	out.ParserOptions = cloneAnyMap(lo.ParserOptions)
	if lo.Globals != nil {
		out.Globals = make(map[string]string, len(lo.Globals))
		for k, v := range lo.Globals {
			out.Globals[k] = v
		}
	}
	return &out
}

func cloneAnyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		return cloneAnyMap(x)
	case []interface{}:
		out := make([]interface{}, len(x))
		for i := range x {
			out[i] = cloneAny(x[i])
		}
		return out
	case []string:
		return append([]string(nil), x...)
	default:
		return v
	}
}

// CloneMap deep copies nested maps and slices of a loosely typed map.
func CloneMap(m map[string]interface{}) map[string]interface{} {
	return cloneAnyMap(m)
}

// CloneValue deep copies nested maps and slices of a loosely typed value.
func CloneValue(v interface{}) interface{} {
	return cloneAny(v)
}
