package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

func TestRuleID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@typescript-eslint/no-explicit-any", "ts/no-explicit-any"},
		{"@eslint-react/no-missing-key", "react/no-missing-key"},
		{"@eslint-react/dom/no-script-url", "react-dom/no-script-url"},
		{"@eslint-react/hooks-extra/no-direct-set-state-in-use-effect", "react-hooks-extra/no-direct-set-state-in-use-effect"},
		{"n/no-deprecated-api", "node/no-deprecated-api"},
		{"import-x/first", "import/first"},
		{"@next/next/no-img-element", "next/no-img-element"},
		{"no-console", "no-console"},
		{"nuxt/rule", "nuxt/rule"},
		{"ts/already-short", "ts/already-short"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultTable.RuleID(tt.in))
		})
	}
}

func TestNewTableRejectsChains(t *testing.T) {
	tests := []struct {
		name  string
		pairs map[string]string
	}{
		{"target is a source", map[string]string{"a": "b", "b": "c"}},
		{"target nested under a source", map[string]string{"a": "b", "b/x": "z", "q": "b"}},
		{"self rename", map[string]string{"a": "a"}},
		{"empty", map[string]string{"": "a"}},
		{"trailing slash", map[string]string{"a/": "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.pairs)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}

	assert.Panics(t, func() { MustTable(map[string]string{"a": "a"}) })
}

func TestMerge(t *testing.T) {
	merged, err := DefaultTable.Merge(map[string]string{"vitest": "", "unicorn": "uni"})
	require.NoError(t, err)
	assert.Equal(t, "vitest/x", merged.RuleID("vitest/x"))
	assert.Equal(t, "uni/x", merged.RuleID("unicorn/x"))
	assert.Equal(t, "test/x", DefaultTable.RuleID("vitest/x"), "the default table is untouched")

	_, err = DefaultTable.Merge(map[string]string{"ts": "typescript"})
	assert.Error(t, err)
}

func TestRulesCollisionLaterWins(t *testing.T) {
	r := types.NewRules().
		Off("@typescript-eslint/no-explicit-any").
		Error("no-console").
		Warn("ts/no-explicit-any")

	out := Rules(r, DefaultTable)
	assert.Equal(t, []string{"ts/no-explicit-any", "no-console"}, out.Keys())
	got, _ := out.Get("ts/no-explicit-any")
	assert.Equal(t, types.Warn(), got)

	assert.Nil(t, Rules(nil, DefaultTable))
}

func TestPluginsPreferExistingNewName(t *testing.T) {
	upstream := &types.PluginDefinition{ID: "upstream"}
	alias := &types.PluginDefinition{ID: "alias"}
	other := &types.PluginDefinition{ID: "other"}

	out := Plugins(map[string]*types.PluginDefinition{
		"@typescript-eslint": upstream,
		"ts":                 alias,
		"unicorn":            other,
	}, DefaultTable)

	assert.Len(t, out, 2)
	assert.Same(t, alias, out["ts"])
	assert.Same(t, other, out["unicorn"])

	out = Plugins(map[string]*types.PluginDefinition{"n": upstream}, DefaultTable)
	assert.Same(t, upstream, out["node"])
	assert.Nil(t, Plugins(nil, DefaultTable))
}

func sampleFragments() []types.Fragment {
	ts := &types.PluginDefinition{ID: "@typescript-eslint/eslint-plugin", Namespace: "@typescript-eslint"}
	return []types.Fragment{
		{Name: "ts/setup", Plugins: map[string]*types.PluginDefinition{"@typescript-eslint": ts}},
		{
			Name:  "ts/rules",
			Files: []string{"**/*.ts"},
			Rules: types.NewRules().Off("@typescript-eslint/no-explicit-any").Error("no-var"),
		},
		{Name: "user", Rules: types.NewRules().Warn("@typescript-eslint/no-explicit-any")},
		{Name: "yaml", Processor: types.MergeProcessors("yml/proc", "other")},
	}
}

func TestFragments(t *testing.T) {
	in := sampleFragments()
	out := Fragments(in, DefaultTable)

	require.Len(t, out, 4)
	assert.Contains(t, out[0].Plugins, "ts")
	assert.NotContains(t, out[0].Plugins, "@typescript-eslint")
	assert.Equal(t, []string{"ts/no-explicit-any", "no-var"}, out[1].Rules.Keys())
	assert.Equal(t, []string{"ts/no-explicit-any"}, out[2].Rules.Keys())
	assert.Equal(t, []string{"yaml/proc", "other"}, out[3].Processor.Merge)

	// Input is not modified
	assert.Contains(t, in[0].Plugins, "@typescript-eslint")
	assert.Equal(t, "@typescript-eslint/no-explicit-any", in[1].Rules.Keys()[0])
	assert.Equal(t, "yml/proc", in[3].Processor.Merge[0])
}

func TestFragmentsIdempotent(t *testing.T) {
	once := Fragments(sampleFragments(), DefaultTable)
	twice := Fragments(once, DefaultTable)

	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].Name, twice[i].Name)
		assert.True(t, once[i].Rules.Equal(twice[i].Rules), "fragment %d rules", i)
		assert.Equal(t, once[i].Plugins, twice[i].Plugins)
		assert.Equal(t, once[i].Processor, twice[i].Processor)
	}
}

func TestNilTablePassesThrough(t *testing.T) {
	var table *Table
	assert.Equal(t, "@stylistic/indent", table.RuleID("@stylistic/indent"))
	assert.Equal(t, "n", table.Namespace("n"))
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, 11, DefaultTable.Len())
}
