package output

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/flatcompose/pkg/compose"
	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

func sample() []types.Fragment {
	ts := &types.PluginDefinition{ID: "@typescript-eslint/eslint-plugin", Kind: types.KindPlugin, Namespace: "@typescript-eslint"}
	parser := &types.PluginDefinition{ID: "@typescript-eslint/parser", Kind: types.KindParser}
	return []types.Fragment{
		{Name: "flatcompose/ignores", Ignores: []string{"**/dist"}},
		{
			Name:            "flatcompose/typescript/rules",
			Files:           []string{"**/*.ts"},
			Plugins:         map[string]*types.PluginDefinition{"ts": ts},
			LanguageOptions: &types.LanguageOptions{Parser: parser},
			Rules: types.NewRules().
				Error("ts/no-explicit-any").
				Warn("ts/ban-ts-comment", map[string]interface{}{"ts-ignore": "allow-with-description"}).
				Off("no-undef"),
		},
		{Processor: types.MergeProcessors("vue/.vue", "vue-blocks")},
	}
}

func render(t *testing.T, format Format, fn func(r *Renderer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(New(&buf, format)))
	return buf.String()
}

func TestFragmentsJSON(t *testing.T) {
	out := render(t, FormatJSON, func(r *Renderer) error { return r.Fragments(sample()) })

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "flatcompose/typescript/rules", decoded[1]["name"])
	plugins := decoded[1]["plugins"].(map[string]interface{})
	assert.Equal(t, "@typescript-eslint/eslint-plugin", plugins["ts"])
}

func TestFragmentsEmptyJSON(t *testing.T) {
	out := render(t, FormatJSON, func(r *Renderer) error { return r.Fragments(nil) })
	assert.Equal(t, "[]\n", out)
}

func TestFragmentsYAML(t *testing.T) {
	out := render(t, FormatYAML, func(r *Renderer) error { return r.Fragments(sample()) })

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, []interface{}{"**/dist"}, decoded[0]["ignores"])
}

func TestFragmentsText(t *testing.T) {
	out := render(t, FormatText, func(r *Renderer) error { return r.Fragments(sample()) })

	assert.Contains(t, out, "3 fragments")
	assert.Contains(t, out, "flatcompose/typescript/rules")
	assert.Contains(t, out, "3 (1 off, 1 warn, 1 error)")
	assert.Contains(t, out, "@typescript-eslint/parser")
	assert.Contains(t, out, "merged(vue/.vue, vue-blocks)")
	assert.Contains(t, out, "(unnamed)")
	assert.NotContains(t, out, "\x1b[", "plain text carries no escape codes")
}

func TestInspect(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		out := render(t, FormatText, func(r *Renderer) error { return r.Inspect(sample()) })
		assert.Contains(t, out, "Name")
		assert.Contains(t, out, "!**/dist")
		assert.Contains(t, out, "flatcompose/typescript/rules")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("json rows", func(t *testing.T) {
		out := render(t, FormatJSON, func(r *Renderer) error { return r.Inspect(sample()) })
		var rows []InspectRow
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"ts"}, rows[1].Plugins)
		assert.Equal(t, 3, rows[1].Rules)
		assert.Equal(t, []string{"!**/dist"}, rows[0].Files)
	})
}

func TestResolved(t *testing.T) {
	frags := sample()

	t.Run("text", func(t *testing.T) {
		out := render(t, FormatText, func(r *Renderer) error { return r.Resolved(compose.Resolve(frags, "src/a.ts")) })
		assert.Contains(t, out, "src/a.ts")
		assert.Contains(t, out, "ts/no-explicit-any")
		assert.Contains(t, out, `{"ts-ignore":"allow-with-description"}`)
		lines := strings.Split(out, "\n")
		var ids []string
		for _, l := range lines {
			if strings.HasPrefix(l, "    ") {
				ids = append(ids, strings.Fields(l)[1])
			}
		}
		assert.Equal(t, []string{"no-undef", "ts/ban-ts-comment", "ts/no-explicit-any"}, ids)
	})

	t.Run("ignored", func(t *testing.T) {
		out := render(t, FormatText, func(r *Renderer) error { return r.Resolved(compose.Resolve(frags, "dist/a.ts")) })
		assert.Contains(t, out, "ignored")
	})

	t.Run("json carries plugin ids", func(t *testing.T) {
		out := render(t, FormatJSON, func(r *Renderer) error { return r.Resolved(compose.Resolve(frags, "src/a.ts")) })
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, map[string]interface{}{"ts": "@typescript-eslint/eslint-plugin"}, decoded["plugins"])
		assert.Equal(t, "error", decoded["rules"].(map[string]interface{})["ts/no-explicit-any"])
	})
}

func TestError(t *testing.T) {
	err := errors.MissingDependency("next", "@next/eslint-plugin-next")

	t.Run("text", func(t *testing.T) {
		out := render(t, FormatText, func(r *Renderer) error { return r.Error(err) })
		assert.Contains(t, out, "Error:")
		assert.Contains(t, out, "[MISSING_DEPENDENCY]")
	})

	t.Run("json", func(t *testing.T) {
		out := render(t, FormatJSON, func(r *Renderer) error { return r.Error(err) })
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "MISSING_DEPENDENCY", decoded["code"])
		assert.Equal(t, "next", decoded["details"].(map[string]interface{})["domain"])
	})

	t.Run("plain error has no code", func(t *testing.T) {
		out := render(t, FormatText, func(r *Renderer) error { return r.Error(stderrors.New("boom")) })
		assert.Equal(t, "Error: boom\n", out)
	})
}

func TestMarkdownPlain(t *testing.T) {
	out := render(t, FormatText, func(r *Renderer) error { return r.Markdown("# Domains\n") })
	assert.Equal(t, "# Domains\n", out)
}

func TestParseStyles(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})

	styles, err := ParseStyles(r, []byte(`
colors:
  brand:
    light: "#000000"
    dark: "#ffffff"
styles:
  Brand:
    bold: true
    foreground: brand
  Literal:
    foreground: "#ff0000"
`))
	require.NoError(t, err)
	assert.Contains(t, styles, "Brand")
	assert.Contains(t, styles, "Literal")
	assert.Equal(t, "x", styles.Render("Missing", "x"))

	_, err = ParseStyles(r, []byte("styles: ["))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	defaults := DefaultStyles(r)
	for _, name := range []string{"Title", "Name", "Label", "Off", "Warn", "Error"} {
		assert.Contains(t, defaults, name)
	}
}
