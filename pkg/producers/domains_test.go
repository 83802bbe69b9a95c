package producers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

func TestConvertGitignore(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		base    string
		want    string
	}{
		{"bare name", "node_modules", ".", "**/node_modules"},
		{"directory", "dist/", ".", "**/dist"},
		{"anchored", "/build", ".", "build"},
		{"nested path", "docs/generated", ".", "docs/generated"},
		{"negated", "!keep.log", ".", "!**/keep.log"},
		{"glob", "*.log", ".", "**/*.log"},
		{"already deep", "**/tmp", ".", "**/tmp"},
		{"sub directory file", "out", "packages/a", "packages/a/**/out"},
		{"sub directory anchored", "/out", "packages/a", "packages/a/out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertGitignore(tt.pattern, tt.base))
		})
	}
}

func TestGitignore(t *testing.T) {
	t.Run("no file gives no fragment", func(t *testing.T) {
		frags := produce(t, GitignoreDomain, newInput(t, options.DomainOptions{}))
		assert.Empty(t, frags)
	})

	t.Run("reads patterns", func(t *testing.T) {
		in := newInput(t, options.DomainOptions{})
		content := "# build output\n/dist\n\n*.log\n!keep.log\n\\#hash\n"
		require.NoError(t, os.WriteFile(filepath.Join(in.Flags.Dir, ".gitignore"), []byte(content), 0o644))

		frags := produce(t, GitignoreDomain, in)
		require.Len(t, frags, 1)
		assert.Equal(t, "flatcompose/gitignore", frags[0].Name)
		assert.True(t, frags[0].IsGlobalIgnore())
		assert.Equal(t, []string{"dist", "**/*.log", "!**/keep.log", "**/#hash"}, frags[0].Ignores)
	})

	t.Run("missing listed file fails", func(t *testing.T) {
		in := newInput(t, options.DomainOptions{Files: []string{"sub/.gitignore"}})
		p, err := Get(GitignoreDomain)
		require.NoError(t, err)
		_, err = p.Produce(context.Background(), in)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("missing listed file tolerated when not strict", func(t *testing.T) {
		in := newInput(t, options.DomainOptions{
			Files: []string{"sub/.gitignore"},
			Extra: map[string]interface{}{"strict": false},
		})
		assert.Empty(t, produce(t, GitignoreDomain, in))
	})
}

func TestIgnores(t *testing.T) {
	opts := options.DomainOptions{Extra: map[string]interface{}{"extra": []interface{}{"**/fixtures"}}}
	frags := produce(t, IgnoresDomain, newInput(t, opts))
	require.Len(t, frags, 1)
	assert.True(t, frags[0].IsGlobalIgnore())
	assert.Subset(t, frags[0].Ignores, globs.Exclude)
	assert.Contains(t, frags[0].Ignores, "**/fixtures")
}

func TestJavascriptEditorMode(t *testing.T) {
	in := newInput(t, options.DomainOptions{})
	frags := produce(t, JavascriptDomain, in)
	rules := byName(t, frags, "flatcompose/javascript/rules")
	cfg, _ := rules.Rules.Get("unused-imports/no-unused-imports")
	assert.Equal(t, types.LevelError, cfg.Level)

	in.Flags.IsInEditor = true
	frags = produce(t, JavascriptDomain, in)
	rules = byName(t, frags, "flatcompose/javascript/rules")
	cfg, _ = rules.Rules.Get("unused-imports/no-unused-imports")
	assert.Equal(t, types.LevelOff, cfg.Level)

	setup := byName(t, frags, "flatcompose/javascript/setup")
	assert.Equal(t, "readonly", setup.LanguageOptions.Globals["window"])
}

func TestStylisticRules(t *testing.T) {
	tests := []struct {
		name   string
		style  options.Stylistic
		indent interface{}
		semi   string
		jsx    bool
	}{
		{"defaults", options.StylisticDefaults, 4, "always", true},
		{"tabs no semi", options.Stylistic{Indent: "tab", Quotes: "double", Semi: false}, "tab", "never", false},
		{"two spaces", options.Stylistic{Indent: 2, Quotes: "single", Semi: true, JSX: true}, 2, "always", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := StylisticRules("@stylistic", &tt.style)
			indent, ok := r.Get("@stylistic/indent")
			require.True(t, ok)
			assert.Equal(t, tt.indent, indent.Options[0])

			semi, _ := r.Get("@stylistic/semi")
			assert.Equal(t, []interface{}{tt.semi}, semi.Options)

			quotes, _ := r.Get("@stylistic/quotes")
			assert.Equal(t, tt.style.Quotes, quotes.Options[0])

			assert.Equal(t, tt.jsx, r.Has("@stylistic/jsx-quotes"))
		})
	}
}

func TestStylisticLessOpinionated(t *testing.T) {
	frags := produce(t, StylisticDomain, newInput(t, options.DomainOptions{}))
	assert.True(t, frags[0].Rules.Has("antfu/top-level-function"))

	opts := options.DomainOptions{Extra: map[string]interface{}{"lessOpinionated": true}}
	frags = produce(t, StylisticDomain, newInput(t, opts))
	assert.False(t, frags[0].Rules.Has("antfu/top-level-function"))
	assert.True(t, frags[0].Rules.Has("antfu/consistent-list-newline"))
}

func TestVue(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		frags := produce(t, VueDomain, newInput(t, options.DomainOptions{}))
		assert.Equal(t, []string{"flatcompose/vue/setup", "flatcompose/vue/rules"}, names(frags))

		rules := frags[1]
		assert.Equal(t, []string{globs.Vue}, rules.Files)
		assert.Equal(t, &types.Processor{Name: "merged", Merge: []string{"vue/.vue", "vue-blocks"}}, rules.Processor)
		assert.Equal(t, M{"blocks": M{"styles": true}}, rules.Settings["vue-blocks"])
		assert.Equal(t, pkgVueParser, rules.LanguageOptions.Parser.ID)
		assert.NotContains(t, rules.LanguageOptions.ParserOptions, "parser")
		assert.True(t, rules.Rules.Has("vue/comment-directive"))
	})

	t.Run("without block extraction", func(t *testing.T) {
		opts := options.DomainOptions{Extra: map[string]interface{}{"sfcBlocks": false}}
		frags := produce(t, VueDomain, newInput(t, opts))
		assert.Equal(t, &types.Processor{Name: "vue/.vue"}, frags[1].Processor)
		assert.Nil(t, frags[1].Settings)
	})

	t.Run("custom blocks keep styles", func(t *testing.T) {
		opts := options.DomainOptions{Extra: map[string]interface{}{
			"sfcBlocks": map[string]interface{}{"blocks": map[string]interface{}{"customBlocks": true}},
		}}
		frags := produce(t, VueDomain, newInput(t, opts))
		assert.Equal(t, M{"blocks": M{"styles": true, "customBlocks": true}}, frags[1].Settings["vue-blocks"])
	})

	t.Run("with typescript", func(t *testing.T) {
		in := newInput(t, options.DomainOptions{})
		in.Flags.TypeScript = true
		frags := produce(t, VueDomain, in)
		assert.Equal(t, pkgTSParser, frags[1].LanguageOptions.ParserOptions["parser"])
	})

	t.Run("vue 2 presets", func(t *testing.T) {
		opts := options.DomainOptions{Extra: map[string]interface{}{"vueVersion": 2}}
		frags2 := produce(t, VueDomain, newInput(t, opts))
		frags3 := produce(t, VueDomain, newInput(t, options.DomainOptions{}))
		assert.False(t, frags2[1].Rules.Equal(frags3[1].Rules))
	})
}

func TestRegexpLevel(t *testing.T) {
	opts := options.DomainOptions{Extra: map[string]interface{}{"level": "warn"}}
	frags := produce(t, RegexpDomain, newInput(t, opts))
	require.Len(t, frags, 1)
	require.Positive(t, frags[0].Rules.Len())
	for _, r := range frags[0].Rules.List() {
		assert.NotEqual(t, types.LevelError, r.Config.Level, r.ID)
	}

	frags = produce(t, RegexpDomain, newInput(t, options.DomainOptions{}))
	cfg, _ := frags[0].Rules.Get("regexp/strict")
	assert.Equal(t, types.LevelError, cfg.Level)
}

func TestUnicornAllRecommended(t *testing.T) {
	small := produce(t, UnicornDomain, newInput(t, options.DomainOptions{}))
	opts := options.DomainOptions{Extra: map[string]interface{}{"allRecommended": true}}
	all := produce(t, UnicornDomain, newInput(t, opts))
	assert.Greater(t, all[0].Rules.Len(), small[0].Rules.Len())
	assert.True(t, all[0].Rules.Has("unicorn/better-regex"))
}

func TestReactSubNamespaces(t *testing.T) {
	frags := produce(t, ReactDomain, newInput(t, options.DomainOptions{}, allOptional(t)...))
	setup := byName(t, frags, "flatcompose/react/setup")
	for _, ns := range []string{"@eslint-react", "@eslint-react/dom", "@eslint-react/hooks-extra", "react-hooks", "react-refresh"} {
		assert.Contains(t, setup.Plugins, ns)
	}
	assert.Same(t, setup.Plugins["@eslint-react"], setup.Plugins["@eslint-react/dom"])
}

func TestTailwindSettings(t *testing.T) {
	opts := options.DomainOptions{Extra: map[string]interface{}{"callees": []interface{}{"cn"}}}
	frags := produce(t, TailwindDomain, newInput(t, opts, allOptional(t)...))
	require.Len(t, frags, 1)
	assert.Equal(t, M{"callees": []interface{}{"cn"}}, frags[0].Settings["tailwindcss"])
}

func TestAstroUsesTypescriptParser(t *testing.T) {
	frags := produce(t, AstroDomain, newInput(t, options.DomainOptions{}, allOptional(t)...))
	rules := byName(t, frags, "flatcompose/astro/rules")
	assert.Equal(t, pkgTSParser, rules.LanguageOptions.ParserOptions["parser"])
	assert.Equal(t, "readonly", rules.LanguageOptions.Globals["Astro"])
	assert.Equal(t, &types.Processor{Name: "astro/client-side-ts"}, rules.Processor)
}

func TestMarkdownCodeBlocks(t *testing.T) {
	in := newInput(t, options.DomainOptions{})
	in.Flags.ComponentExts = []string{"vue"}
	frags := produce(t, MarkdownDomain, in)
	disables := byName(t, frags, "flatcompose/markdown/disables")
	assert.Equal(t, []string{globs.MarkdownCode, "**/*.md/**/*.vue"}, disables.Files)
	assert.True(t, disables.Matches("README.md/0_0.ts"))
	assert.False(t, disables.Matches("src/index.ts"))
}

func TestFormatters(t *testing.T) {
	installed := allOptional(t)

	t.Run("defaults", func(t *testing.T) {
		frags := produce(t, FormattersDomain, newInput(t, options.DomainOptions{}, installed...))
		assert.Equal(t, []string{
			"flatcompose/formatters/setup",
			"flatcompose/formatters/css",
			"flatcompose/formatters/less",
			"flatcompose/formatters/scss",
			"flatcompose/formatters/html",
			"flatcompose/formatters/markdown",
			"flatcompose/formatters/graphql",
		}, names(frags))

		css := byName(t, frags, "flatcompose/formatters/css")
		cfg, ok := css.Rules.Get("format/prettier")
		require.True(t, ok)
		params := cfg.Options[0].(M)
		assert.Equal(t, "css", params["parser"])
		assert.Equal(t, 4, params["tabWidth"])
		assert.Equal(t, true, params["singleQuote"])
		assert.Equal(t, true, params["semi"])
		assert.Equal(t, "eslint-plugin-format/parser-plain", css.LanguageOptions.Parser.ID)
	})

	t.Run("explicit selection", func(t *testing.T) {
		opts := options.DomainOptions{Extra: map[string]interface{}{
			"markdown":        "dprint",
			"xml":             true,
			"prettierOptions": map[string]interface{}{"printWidth": 80},
		}}
		frags := produce(t, FormattersDomain, newInput(t, opts, installed...))
		assert.Equal(t, []string{
			"flatcompose/formatters/setup",
			"flatcompose/formatters/xml",
			"flatcompose/formatters/markdown",
		}, names(frags))

		md := byName(t, frags, "flatcompose/formatters/markdown")
		assert.True(t, md.Rules.Has("format/dprint"))

		xml := byName(t, frags, "flatcompose/formatters/xml")
		cfg, _ := xml.Rules.Get("format/prettier")
		params := cfg.Options[0].(M)
		assert.Equal(t, 80, params["printWidth"])
		assert.Equal(t, []interface{}{pkgPrettierX}, params["plugins"])
	})

	t.Run("xml needs its prettier plugin", func(t *testing.T) {
		opts := options.DomainOptions{Extra: map[string]interface{}{"xml": true}}
		p, err := Get(FormattersDomain)
		require.NoError(t, err)
		_, err = p.Produce(context.Background(), newInput(t, opts, pkgFormat))
		require.Error(t, err)
		assert.Equal(t, []string{pkgPrettierX}, errors.GetErrorDetails(err)["packages"])
	})
}

func TestSortKeysScoped(t *testing.T) {
	frags := produce(t, SortPackageJSONDomain, newInput(t, options.DomainOptions{}))
	require.Len(t, frags, 1)
	assert.True(t, frags[0].Matches("package.json"))
	assert.True(t, frags[0].Matches("packages/a/package.json"))
	assert.False(t, frags[0].Matches("tsconfig.json"))

	frags = produce(t, SortTSConfigDomain, newInput(t, options.DomainOptions{}))
	assert.True(t, frags[0].Matches("tsconfig.build.json"))
}
