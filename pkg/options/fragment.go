package options

import (
	"context"
	"fmt"
	"sort"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/loader"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// FragmentSpec is a fragment written as data, in a config file or as the
// flat-config keys of the top-level options. Plugins and the parser are
// given as package ids and resolved through a loader.
type FragmentSpec struct {
	Name            string                 `mapstructure:"name" toml:"name,omitempty" yaml:"name,omitempty"`
	Files           []string               `mapstructure:"files" toml:"files,omitempty" yaml:"files,omitempty"`
	Ignores         []string               `mapstructure:"ignores" toml:"ignores,omitempty" yaml:"ignores,omitempty"`
	Plugins         map[string]string      `mapstructure:"plugins" toml:"plugins,omitempty" yaml:"plugins,omitempty"`
	Rules           *types.Rules           `mapstructure:"rules" toml:"-" yaml:"rules,omitempty"`
	LanguageOptions map[string]interface{} `mapstructure:"languageOptions" toml:"languageOptions,omitempty" yaml:"languageOptions,omitempty"`
	LinterOptions   map[string]interface{} `mapstructure:"linterOptions" toml:"linterOptions,omitempty" yaml:"linterOptions,omitempty"`
	Processor       string                 `mapstructure:"processor" toml:"processor,omitempty" yaml:"processor,omitempty"`
	Settings        map[string]interface{} `mapstructure:"settings" toml:"settings,omitempty" yaml:"settings,omitempty"`
}

// IsZero reports whether no field is set.
func (s FragmentSpec) IsZero() bool {
	return s.Name == "" &&
		s.Files == nil &&
		s.Ignores == nil &&
		len(s.Plugins) == 0 &&
		s.Rules == nil &&
		len(s.LanguageOptions) == 0 &&
		len(s.LinterOptions) == 0 &&
		s.Processor == "" &&
		len(s.Settings) == 0
}

// Build resolves s into a fragment, loading plugins through l. source names
// s in errors, e.g. "options" or "config fragment 2".
func (s FragmentSpec) Build(ctx context.Context, l loader.Loader, source string) (types.Fragment, error) {
	frag := types.Fragment{
		Name:          s.Name,
		Rules:         s.Rules.Clone(),
		LinterOptions: types.CloneMap(s.LinterOptions),
		Settings:      types.CloneMap(s.Settings),
	}
	if s.Files != nil {
		frag.Files = append([]string{}, s.Files...)
	}
	if s.Ignores != nil {
		frag.Ignores = append([]string{}, s.Ignores...)
	}
	if s.Processor != "" {
		frag.Processor = &types.Processor{Name: s.Processor}
	}

	if len(s.Plugins) > 0 {
		namespaces := make([]string, 0, len(s.Plugins))
		for ns := range s.Plugins {
			namespaces = append(namespaces, ns)
		}
		sort.Strings(namespaces)

		ids := make([]string, len(namespaces))
		for i, ns := range namespaces {
			ids[i] = s.Plugins[ns]
		}
		defs, err := loader.Require(ctx, l, source, ids...)
		if err != nil {
			return types.Fragment{}, err
		}
		frag.Plugins = make(map[string]*types.PluginDefinition, len(defs))
		for i, ns := range namespaces {
			frag.Plugins[ns] = defs[i]
		}
	}

	if len(s.LanguageOptions) > 0 {
		lo, err := s.languageOptions(ctx, l, source)
		if err != nil {
			return types.Fragment{}, err
		}
		frag.LanguageOptions = lo
	}
	return frag, nil
}

func (s FragmentSpec) languageOptions(ctx context.Context, l loader.Loader, source string) (*types.LanguageOptions, error) {
	lo := &types.LanguageOptions{}
	for k, v := range s.LanguageOptions {
		switch Normalize(k) {
		case "parser":
			id, ok := v.(string)
			if !ok {
				return nil, errors.Newf(errors.ErrInvalidInput, "%s: languageOptions.parser must be a package id", source)
			}
			parser, err := loader.RequireOne(ctx, l, source, id)
			if err != nil {
				return nil, err
			}
			lo.Parser = parser
		case "parseroptions":
			m, ok := toStringMap(v)
			if !ok {
				return nil, errors.Newf(errors.ErrInvalidInput, "%s: languageOptions.parserOptions must be an object", source)
			}
			lo.ParserOptions = types.CloneMap(m)
		case "globals":
			m, ok := toStringMap(v)
			if !ok {
				return nil, errors.Newf(errors.ErrInvalidInput, "%s: languageOptions.globals must be an object", source)
			}
			lo.Globals = make(map[string]string, len(m))
			for name, g := range m {
				lo.Globals[name] = globalAccess(g)
			}
		case "sourcetype":
			lo.SourceType = fmt.Sprint(v)
		case "ecmaversion":
			lo.EcmaVersion = v
		default:
			return nil, errors.Newf(errors.ErrInvalidInput, "%s: unknown languageOptions key %q", source, k)
		}
	}
	return lo, nil
}

// globalAccess normalizes the ways a global can be declared.
func globalAccess(v interface{}) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "writable"
		}
		return "readonly"
	case string:
		switch x {
		case "writeable", "writable", "true":
			return "writable"
		case "off":
			return "off"
		}
	}
	return "readonly"
}
