// Package options turns the caller's single options object into normalized,
// typed values: one Toggle per domain, a handful of global flags, and the
// flat-config keys that are fused into their own fragment.
package options

import (
	"sort"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Global keys, in canonical spelling.
const (
	KeyComponentExts     = "componentExts"
	KeyIsInEditor        = "isInEditor"
	KeyAutoRenamePlugins = "autoRenamePlugins"
	KeyJSX               = "jsx"
)

// flatKeys are flat-config fields accepted at the top level, by normalized
// spelling.
var flatKeys = map[string]string{
	"name":            "name",
	"files":           "files",
	"ignores":         "ignores",
	"rules":           "rules",
	"plugins":         "plugins",
	"settings":        "settings",
	"languageoptions": "languageOptions",
	"linteroptions":   "linterOptions",
	"processor":       "processor",
}

var globalKeys = map[string]string{
	"componentexts":       KeyComponentExts,
	"componentextensions": KeyComponentExts,
	"isineditor":          KeyIsInEditor,
	"autorenameplugins":   KeyAutoRenamePlugins,
	"jsx":                 KeyJSX,
}

// OptionsConfig is the parsed top-level options object.
type OptionsConfig struct {
	// Domains by normalized key
	domains map[string]Toggle

	ComponentExts     []string
	IsInEditor        *bool
	AutoRenamePlugins *bool
	JSX               *bool

	// Fused holds the flat-config keys given at the top level
	Fused FragmentSpec

	// Files records a top-level "files" key. It is ambiguous at this level
	// and makes composition fail.
	Files    []string
	HasFiles bool
}

// New returns an empty config.
func New() *OptionsConfig {
	return &OptionsConfig{domains: map[string]Toggle{}}
}

// Parse reads a raw options map, as decoded from code, JSON, YAML or TOML.
func Parse(raw map[string]interface{}) (*OptionsConfig, error) {
	cfg := New()

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := raw[key]
		norm := Normalize(key)

		if g, ok := globalKeys[norm]; ok {
			if err := cfg.setGlobal(g, v); err != nil {
				return nil, err
			}
			continue
		}
		if f, ok := flatKeys[norm]; ok {
			if err := cfg.setFlat(f, v); err != nil {
				return nil, err
			}
			continue
		}

		t, err := parseToggle(key, v)
		if err != nil {
			return nil, err
		}
		if t.IsSet() {
			cfg.domains[norm] = t
		}
	}
	return cfg, nil
}

func (c *OptionsConfig) setGlobal(key string, v interface{}) error {
	switch key {
	case KeyComponentExts:
		exts, err := toStrings(v)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "option %q", key)
		}
		c.ComponentExts = exts
	case KeyIsInEditor, KeyAutoRenamePlugins, KeyJSX:
		b, err := toBool(key, v)
		if err != nil {
			return err
		}
		switch key {
		case KeyIsInEditor:
			c.IsInEditor = &b
		case KeyAutoRenamePlugins:
			c.AutoRenamePlugins = &b
		case KeyJSX:
			c.JSX = &b
		}
	}
	return nil
}

func (c *OptionsConfig) setFlat(key string, v interface{}) error {
	wrap := func(err error) error {
		return errors.Wrapf(err, errors.ErrInvalidInput, "top-level %q", key)
	}
	switch key {
	case "files":
		files, err := toStrings(v)
		if err != nil {
			return wrap(err)
		}
		c.Files = files
		c.HasFiles = true
	case "name":
		s, ok := v.(string)
		if !ok {
			return errors.Newf(errors.ErrInvalidInput, "top-level %q must be a string", key)
		}
		c.Fused.Name = s
	case "ignores":
		ignores, err := toStrings(v)
		if err != nil {
			return wrap(err)
		}
		c.Fused.Ignores = ignores
	case "rules":
		rules, err := toRules(v)
		if err != nil {
			return wrap(err)
		}
		c.Fused.Rules = rules
	case "plugins":
		m, ok := toStringMap(v)
		if !ok {
			return errors.Newf(errors.ErrInvalidInput, "top-level %q must map namespaces to package ids", key)
		}
		c.Fused.Plugins = make(map[string]string, len(m))
		for ns, id := range m {
			s, ok := id.(string)
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, "plugin %q must be a package id", ns)
			}
			c.Fused.Plugins[ns] = s
		}
	case "settings", "languageOptions", "linterOptions":
		m, ok := toStringMap(v)
		if !ok {
			return errors.Newf(errors.ErrInvalidInput, "top-level %q must be an object", key)
		}
		m = types.CloneMap(m)
		switch key {
		case "settings":
			c.Fused.Settings = m
		case "languageOptions":
			c.Fused.LanguageOptions = m
		default:
			c.Fused.LinterOptions = m
		}
	case "processor":
		s, ok := v.(string)
		if !ok {
			return errors.Newf(errors.ErrInvalidInput, "top-level %q must be a processor name", key)
		}
		c.Fused.Processor = s
	}
	return nil
}

// Set stores a domain toggle.
func (c *OptionsConfig) Set(key string, t Toggle) *OptionsConfig {
	if c.domains == nil {
		c.domains = map[string]Toggle{}
	}
	if !t.IsSet() {
		delete(c.domains, Normalize(key))
		return c
	}
	c.domains[Normalize(key)] = t
	return c
}

// Toggle returns the toggle of a domain, Unset when absent.
func (c *OptionsConfig) Toggle(key string) Toggle {
	if c == nil {
		return Unset()
	}
	return c.domains[Normalize(key)]
}

// Domains lists the domains the caller set, by normalized key, sorted.
func (c *OptionsConfig) Domains() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.domains))
	for k := range c.domains {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// HasFused reports whether any flat-config key was given at the top level.
func (c *OptionsConfig) HasFused() bool {
	return c != nil && !c.Fused.IsZero()
}

// ResolveSubOptions projects the options object of a domain. Boolean and
// absent values give empty options. The result is a copy.
func ResolveSubOptions(c *OptionsConfig, key string) DomainOptions {
	return c.Toggle(key).Options()
}

// GetOverrides returns a copy of a domain's overrides, empty when none.
func GetOverrides(c *OptionsConfig, key string) *types.Rules {
	o := ResolveSubOptions(c, key)
	if o.Overrides == nil {
		return types.NewRules()
	}
	return o.Overrides
}

// Enabled resolves a domain: an explicit choice wins, otherwise def.
func Enabled(c *OptionsConfig, key string, def bool) bool {
	return c.Toggle(key).Enabled(def)
}

// AutoRename is true unless the caller turned renaming off.
func AutoRename(c *OptionsConfig) bool {
	if c == nil || c.AutoRenamePlugins == nil {
		return true
	}
	return *c.AutoRenamePlugins
}

// InEditor resolves isInEditor, detecting the editor when unset.
func InEditor(c *OptionsConfig, getenv func(string) string) bool {
	if c != nil && c.IsInEditor != nil {
		return *c.IsInEditor
	}
	return DetectEditor(getenv)
}

// DetectEditor reports whether the process runs inside an editor's language
// server rather than CI or a terminal.
func DetectEditor(getenv func(string) string) bool {
	if getenv == nil {
		return false
	}
	if getenv("CI") != "" {
		return false
	}
	for _, k := range []string{"VSCODE_PID", "VSCODE_CWD", "JETBRAINS_IDE", "VIM", "NVIM"} {
		if getenv(k) != "" {
			return true
		}
	}
	return false
}
