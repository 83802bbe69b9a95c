package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func tsPlugin() *PluginDefinition {
	return &PluginDefinition{ID: "@typescript-eslint/eslint-plugin", Kind: KindPlugin, Namespace: "@typescript-eslint", Bundled: true}
}

func TestFragmentMatches(t *testing.T) {
	tests := []struct {
		name string
		frag Fragment
		path string
		want bool
	}{
		{"global fragment", Fragment{Rules: NewRules().Error("a")}, "any/file.js", true},
		{"files match", Fragment{Files: []string{"**/*.ts"}}, "src/a.ts", true},
		{"files miss", Fragment{Files: []string{"**/*.ts"}}, "src/a.js", false},
		{"empty files list matches nothing", Fragment{Files: []string{}}, "src/a.ts", false},
		{"ignored", Fragment{Files: []string{"**/*.ts"}, Ignores: []string{"**/gen/**"}}, "gen/a.ts", false},
		{"global ignore never matches", Fragment{Ignores: []string{"**/dist"}}, "src/a.ts", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.frag.Matches(tt.path))
		})
	}
}

func TestIsGlobalIgnore(t *testing.T) {
	assert.True(t, Fragment{Name: "ignores", Ignores: []string{"**/dist"}}.IsGlobalIgnore())
	assert.False(t, Fragment{Ignores: []string{"**/dist"}, Files: []string{"**/*.js"}}.IsGlobalIgnore())
	assert.False(t, Fragment{Ignores: []string{"**/dist"}, Rules: NewRules().Off("a")}.IsGlobalIgnore())
	assert.False(t, Fragment{}.IsGlobalIgnore())
}

func TestFragmentClone(t *testing.T) {
	plugin := tsPlugin()
	orig := Fragment{
		Name:    "ts/rules",
		Files:   []string{"**/*.ts"},
		Plugins: map[string]*PluginDefinition{"@typescript-eslint": plugin},
		Rules:   NewRules().Error("a"),
		LanguageOptions: &LanguageOptions{
			ParserOptions: map[string]interface{}{"extraFileExtensions": []interface{}{".vue"}},
		},
		Settings: map[string]interface{}{"nested": map[string]interface{}{"k": "v"}},
	}

	clone := orig.Clone()
	clone.Files[0] = "changed"
	clone.Rules.Off("a")
	clone.Plugins["other"] = plugin
	clone.LanguageOptions.ParserOptions["extraFileExtensions"].([]interface{})[0] = ".svelte"
	clone.Settings["nested"].(map[string]interface{})["k"] = "changed"

	assert.Equal(t, "**/*.ts", orig.Files[0])
	cfg, _ := orig.Rules.Get("a")
	assert.Equal(t, LevelError, cfg.Level)
	assert.Len(t, orig.Plugins, 1)
	assert.Equal(t, ".vue", orig.LanguageOptions.ParserOptions["extraFileExtensions"].([]interface{})[0])
	assert.Equal(t, "v", orig.Settings["nested"].(map[string]interface{})["k"])

	// Handles are shared, not copied
	assert.Same(t, plugin, clone.Plugins["@typescript-eslint"])
}

func TestFragmentJSON(t *testing.T) {
	parser := &PluginDefinition{ID: "@typescript-eslint/parser", Kind: KindParser}
	frag := Fragment{
		Name:    "ts/setup",
		Files:   []string{"**/*.ts"},
		Plugins: map[string]*PluginDefinition{"ts": tsPlugin()},
		LanguageOptions: &LanguageOptions{
			Parser:     parser,
			SourceType: "module",
		},
		Rules: NewRules().Warn("ts/no-explicit-any"),
	}

	data, err := json.Marshal(frag)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "ts/setup",
		"files": ["**/*.ts"],
		"plugins": {"ts": "@typescript-eslint/eslint-plugin"},
		"languageOptions": {"sourceType": "module", "parser": "@typescript-eslint/parser"},
		"rules": {"ts/no-explicit-any": "warn"}
	}`, string(data))

	// Empty parts are omitted
	data, err = json.Marshal(Fragment{Ignores: []string{"**/dist"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ignores": ["**/dist"]}`, string(data))
}

func TestFragmentYAML(t *testing.T) {
	frag := Fragment{
		Name:    "ts/setup",
		Plugins: map[string]*PluginDefinition{"ts": tsPlugin()},
		Rules:   NewRules().Error("b").Off("a"),
	}
	out, err := yaml.Marshal(frag)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &generic))
	assert.Equal(t, "ts/setup", generic["name"])
	assert.Equal(t, map[string]interface{}{"ts": "@typescript-eslint/eslint-plugin"}, generic["plugins"])

	// Rule order survives
	assert.Regexp(t, `(?s)b: error.*a: "?off"?`, string(out))
}

func TestPluginDefinitionConfig(t *testing.T) {
	p := &PluginDefinition{
		ID:         "eslint-plugin-vue",
		Configs:    map[string]*Rules{"recommended": NewRules().Error("vue/a")},
		Processors: []string{".vue"},
	}

	preset := p.Config("recommended")
	preset.Off("vue/a")
	cfg, _ := p.Configs["recommended"].Get("vue/a")
	assert.Equal(t, LevelError, cfg.Level)

	assert.Equal(t, 0, p.Config("missing").Len())
	assert.True(t, p.HasProcessor(".vue"))
	assert.False(t, p.HasProcessor("other"))

	var nilDef *PluginDefinition
	assert.Equal(t, 0, nilDef.Config("x").Len())
}

func TestMergeProcessors(t *testing.T) {
	assert.Equal(t, &Processor{Name: "vue/.vue"}, MergeProcessors("vue/.vue"))
	merged := MergeProcessors("vue/.vue", "sfc-blocks")
	assert.Equal(t, "merged", merged.Name)
	assert.Equal(t, []string{"vue/.vue", "sfc-blocks"}, merged.Merge)
}
