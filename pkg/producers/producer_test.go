package producers

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/loader"
	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/probe"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// allDomains is every domain a producer must exist for.
var allDomains = []string{
	"gitignore", "ignores", "javascript", "comments", "node", "jsdoc", "imports",
	"perfectionist", "unicorn", "regexp", "jsx", "typescript", "stylistic", "test",
	"vue", "next", "react", "svelte", "unocss", "tailwindcss", "astro", "jsonc",
	"sort-package-json", "sort-tsconfig", "yaml", "toml", "markdown", "formatters",
}

var optionalDomains = map[string]bool{
	"next": true, "react": true, "svelte": true, "astro": true,
	"unocss": true, "tailwindcss": true, "formatters": true,
}

// newInput builds an input over the embedded catalog with installed
// packages treated as present.
func newInput(t *testing.T, opts options.DomainOptions, installed ...string) Input {
	t.Helper()
	style := options.StylisticDefaults
	return Input{
		Options: opts,
		Flags: Flags{
			Stylistic: &style,
			Dir:       t.TempDir(),
		},
		Loader: loader.NewCatalog(probe.Static(installed...)),
	}
}

// allOptional lists every optional package so all domains can produce.
func allOptional(t *testing.T) []string {
	t.Helper()
	var ids []string
	for _, def := range loader.Builtin() {
		if !def.Bundled {
			ids = append(ids, def.ID)
		}
	}
	return ids
}

func produce(t *testing.T, domain string, in Input) []types.Fragment {
	t.Helper()
	p, err := Get(domain)
	require.NoError(t, err)
	frags, err := p.Produce(context.Background(), in)
	require.NoError(t, err)
	return frags
}

func names(frags []types.Fragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Name
	}
	return out
}

func byName(t *testing.T, frags []types.Fragment, name string) types.Fragment {
	t.Helper()
	for _, f := range frags {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no fragment %q in %v", name, names(frags))
	return types.Fragment{}
}

func TestRegistryHasEveryDomain(t *testing.T) {
	for _, d := range allDomains {
		assert.True(t, Has(d), d)
	}
	assert.Len(t, Domains(), len(allDomains))
}

func TestDescribe(t *testing.T) {
	for _, d := range allDomains {
		p, err := Get(d)
		require.NoError(t, err)
		info := Describe(p)
		assert.Equal(t, d, info.Domain)
		assert.NotEmpty(t, info.Description, d)
		assert.Equal(t, optionalDomains[d], info.Optional, d)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	err := Register(jsxProducer{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestName(t *testing.T) {
	assert.Equal(t, "flatcompose/typescript/rules", Name("typescript", "rules"))
	assert.Equal(t, "flatcompose/ignores", Name("ignores", ""))
}

func TestEveryDomainProduces(t *testing.T) {
	installed := allOptional(t)
	for _, d := range allDomains {
		t.Run(d, func(t *testing.T) {
			frags := produce(t, d, newInput(t, options.DomainOptions{}, installed...))
			for _, f := range frags {
				assert.Contains(t, f.Name, NamePrefix+"/"+d, "fragment names stay in the domain")
				for _, pattern := range f.Files {
					assert.True(t, globs.Valid(pattern), pattern)
				}
			}
		})
	}
}

func TestOverridesWin(t *testing.T) {
	installed := allOptional(t)
	for _, d := range allDomains {
		if d == "gitignore" || d == "ignores" || d == "jsx" {
			continue
		}
		t.Run(d, func(t *testing.T) {
			opts := options.DomainOptions{Overrides: types.NewRules().Off("probe/rule")}
			frags := produce(t, d, newInput(t, opts, installed...))

			var found bool
			for _, f := range frags {
				if cfg, ok := f.Rules.Get("probe/rule"); ok {
					found = true
					assert.Equal(t, types.Off(), cfg)
				}
			}
			assert.True(t, found, "override missing from %v", names(frags))
		})
	}
}

func TestTypescriptScenario(t *testing.T) {
	opts := options.DomainOptions{
		Overrides: types.NewRules().Warn("ts/no-explicit-any"),
	}
	frags := produce(t, TypescriptDomain, newInput(t, opts))

	assert.Equal(t, []string{
		"flatcompose/typescript/setup",
		"flatcompose/typescript/parser",
		"flatcompose/typescript/rules",
	}, names(frags))

	setup := frags[0]
	assert.Contains(t, setup.Plugins, "@typescript-eslint")
	assert.Contains(t, setup.Plugins, "antfu")

	rules := byName(t, frags, "flatcompose/typescript/rules")
	assert.Equal(t, []string{globs.TS, globs.TSX}, rules.Files)
	cfg, ok := rules.Rules.Get("ts/no-explicit-any")
	require.True(t, ok)
	assert.Equal(t, types.LevelWarn, cfg.Level)

	// The override comes after the upstream spelling so it wins once
	// namespaces are shortened.
	keys := rules.Rules.Keys()
	assert.Less(t, indexOf(keys, "@typescript-eslint/no-explicit-any"), indexOf(keys, "ts/no-explicit-any"))

	parser := byName(t, frags, "flatcompose/typescript/parser")
	require.NotNil(t, parser.LanguageOptions)
	assert.Equal(t, pkgTSParser, parser.LanguageOptions.Parser.ID)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func TestTypescriptTypeAware(t *testing.T) {
	in := newInput(t, options.DomainOptions{})
	require.NoError(t, os.WriteFile(filepath.Join(in.Flags.Dir, "tsconfig.json"), []byte("{}"), 0o644))
	in.Flags.ComponentExts = []string{"vue"}

	frags := produce(t, TypescriptDomain, in)
	assert.Equal(t, []string{
		"flatcompose/typescript/setup",
		"flatcompose/typescript/parser",
		"flatcompose/typescript/type-aware-parser",
		"flatcompose/typescript/rules",
		"flatcompose/typescript/rules-type-aware",
	}, names(frags))

	aware := byName(t, frags, "flatcompose/typescript/type-aware-parser")
	assert.Equal(t, []interface{}{"tsconfig.json"}, aware.LanguageOptions.ParserOptions["project"])
	assert.Equal(t, in.Flags.Dir, aware.LanguageOptions.ParserOptions["tsconfigRootDir"])
	service := aware.LanguageOptions.ParserOptions["projectService"].(M)
	assert.Equal(t, "tsconfig.json", service["defaultProject"])
	assert.Equal(t, []string{globs.TS, globs.TSX}, aware.Files)
	assert.Equal(t, []string{"**/*.md/**", globs.AstroTS}, aware.Ignores)

	plain := byName(t, frags, "flatcompose/typescript/parser")
	assert.Contains(t, plain.Files, "**/*.vue")
	assert.Equal(t, []string{".vue"}, plain.LanguageOptions.ParserOptions["extraFileExtensions"])
	assert.Empty(t, plain.Ignores)

	typed := byName(t, frags, "flatcompose/typescript/rules-type-aware")
	assert.True(t, typed.Rules.Has("@typescript-eslint/no-unsafe-call"))
	assert.True(t, typed.Rules.Has("@typescript-eslint/prefer-optional-chain"))
	assert.False(t, typed.Rules.Has("@typescript-eslint/strict-boolean-expressions"))
}

func TestTypescriptRuleAdjustments(t *testing.T) {
	frags := produce(t, TypescriptDomain, newInput(t, options.DomainOptions{}))
	rules := byName(t, frags, "flatcompose/typescript/rules")

	tests := []struct {
		rule  string
		level types.Level
	}{
		{"@typescript-eslint/no-explicit-any", types.LevelOff},
		{"@typescript-eslint/no-wrapper-object-types", types.LevelError},
		{"@typescript-eslint/no-unused-expressions", types.LevelError},
		{"@typescript-eslint/no-dupe-class-members", types.LevelError},
		{"@typescript-eslint/method-signature-style", types.LevelError},
		{"@typescript-eslint/no-empty-object-type", types.LevelError},
		{"@typescript-eslint/no-useless-constructor", types.LevelOff},
		{"@typescript-eslint/array-type", types.LevelError},
		{"no-dupe-class-members", types.LevelOff},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			cfg, ok := rules.Rules.Get(tt.rule)
			require.True(t, ok)
			assert.Equal(t, tt.level, cfg.Level)
		})
	}

	cfg, _ := rules.Rules.Get("@typescript-eslint/no-unused-expressions")
	assert.Equal(t, []interface{}{M{
		"allowShortCircuit":    true,
		"allowTaggedTemplates": true,
		"allowTernary":         true,
	}}, cfg.Options)
}

func TestTypescriptLibRequiresReturnTypes(t *testing.T) {
	opts := options.DomainOptions{Extra: map[string]interface{}{"type": "lib"}}
	frags := produce(t, TypescriptDomain, newInput(t, opts))
	rules := byName(t, frags, "flatcompose/typescript/rules")
	assert.True(t, rules.Rules.Has("@typescript-eslint/explicit-function-return-type"))
}

func TestMissingOptionalDependency(t *testing.T) {
	tests := []struct {
		domain   string
		packages []string
	}{
		{"next", []string{pkgNext}},
		{"react", []string{pkgReact, pkgReactHooks, pkgReactRefresh}},
		{"svelte", []string{pkgSvelte, pkgSvelteParser}},
		{"astro", []string{pkgAstro, pkgAstroParser}},
		{"unocss", []string{pkgUnoCSS}},
		{"tailwindcss", []string{pkgTailwind}},
		{"formatters", []string{pkgFormat}},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			p, err := Get(tt.domain)
			require.NoError(t, err)
			_, err = p.Produce(context.Background(), newInput(t, options.DomainOptions{}))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMissingDependency))
			details := errors.GetErrorDetails(err)
			assert.Equal(t, tt.domain, details["domain"])
			assert.Equal(t, tt.packages, details["packages"])
		})
	}
}

func TestPartialInstallNamesOnlyMissing(t *testing.T) {
	p, err := Get(ReactDomain)
	require.NoError(t, err)
	_, err = p.Produce(context.Background(), newInput(t, options.DomainOptions{}, pkgReact))
	require.Error(t, err)
	assert.Equal(t, []string{pkgReactHooks, pkgReactRefresh}, errors.GetErrorDetails(err)["packages"])
}

func TestLoaderFailurePropagates(t *testing.T) {
	boom := stderrors.New("registry unreachable")
	in := newInput(t, options.DomainOptions{})
	in.Loader = loader.Func(func(ctx context.Context, id string) (*types.PluginDefinition, error) {
		return nil, boom
	})

	p, err := Get(JavascriptDomain)
	require.NoError(t, err)
	_, err = p.Produce(context.Background(), in)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.IsErrorCode(err, errors.ErrMissingDependency))
}

func TestFilesOverride(t *testing.T) {
	opts := options.DomainOptions{Files: []string{"src/**/*.jsx"}}
	frags := produce(t, JSXDomain, newInput(t, opts))
	require.Len(t, frags, 1)
	assert.Equal(t, []string{"src/**/*.jsx"}, frags[0].Files)
}

func TestInvalidDomainOptions(t *testing.T) {
	tests := []struct {
		domain string
		extra  map[string]interface{}
	}{
		{"vue", map[string]interface{}{"vueVersion": 4}},
		{"vue", map[string]interface{}{"sfcBlocks": "yes"}},
		{"regexp", map[string]interface{}{"level": "off"}},
		{"regexp", map[string]interface{}{"level": "loud"}},
		{"formatters", map[string]interface{}{"css": "dprint"}},
		{"unicorn", map[string]interface{}{"allRecommended": map[string]interface{}{"a": 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			p, err := Get(tt.domain)
			require.NoError(t, err)
			_, err = p.Produce(context.Background(),
				newInput(t, options.DomainOptions{Extra: tt.extra}, allOptional(t)...))
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "%v", err)
		})
	}
}
