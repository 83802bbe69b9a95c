package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/producers"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

func mustParse(t *testing.T, raw map[string]interface{}) *options.OptionsConfig {
	t.Helper()
	cfg, err := options.Parse(raw)
	require.NoError(t, err)
	return cfg
}

func TestOrderCoversEveryProducer(t *testing.T) {
	assert.ElementsMatch(t, producers.Domains(), Order)
}

func TestBuildPlanDefaults(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]interface{}
		declared []string
		has      []string
		lacks    []string
	}{
		{
			name:  "plain project",
			has:   []string{"ignores", "javascript", "stylistic", "jsonc", "sort-package-json", "markdown"},
			lacks: []string{"gitignore", "typescript", "vue", "react", "svelte", "formatters"},
		},
		{
			name:     "declared typescript and vue",
			declared: []string{"typescript", "vue"},
			has:      []string{"typescript", "vue"},
		},
		{
			name:     "explicit false beats the probe",
			raw:      map[string]interface{}{"typescript": false},
			declared: []string{"typescript"},
			lacks:    []string{"typescript"},
		},
		{
			name:  "sort domains follow jsonc",
			raw:   map[string]interface{}{"jsonc": false},
			lacks: []string{"jsonc", "sort-package-json", "sort-tsconfig"},
		},
		{
			name:  "stylistic off",
			raw:   map[string]interface{}{"stylistic": false},
			lacks: []string{"stylistic"},
		},
		{
			name:  "jsx off",
			raw:   map[string]interface{}{"jsx": false},
			lacks: []string{"jsx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := BuildPlan(mustParse(t, tt.raw), testEnv(t, tt.declared...))
			require.NoError(t, err)
			domains := plan.Domains()
			for _, d := range tt.has {
				assert.Contains(t, domains, d)
			}
			for _, d := range tt.lacks {
				assert.NotContains(t, domains, d)
			}
		})
	}
}

func TestBuildPlanKeepsOrder(t *testing.T) {
	plan, err := BuildPlan(mustParse(t, map[string]interface{}{"formatters": true, "react": true, "typescript": true}), testEnv(t))
	require.NoError(t, err)

	last := -1
	for _, d := range plan.Domains() {
		idx := -1
		for i, o := range Order {
			if o == d {
				idx = i
			}
		}
		assert.Greater(t, idx, last, d)
		last = idx
	}
}

func TestBuildPlanGitignore(t *testing.T) {
	env := testEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.Dir, ".gitignore"), []byte("dist\n"), 0o644))

	plan, err := BuildPlan(nil, env)
	require.NoError(t, err)
	assert.Equal(t, producers.GitignoreDomain, plan.Domains()[0])
}

func TestBuildPlanFlags(t *testing.T) {
	t.Run("vue adds its extension", func(t *testing.T) {
		plan, err := BuildPlan(mustParse(t, map[string]interface{}{"vue": true, "componentExts": []interface{}{"marko"}}), testEnv(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"marko", "vue"}, plan.Flags.ComponentExts)
	})

	t.Run("stylistic off leaves no settings", func(t *testing.T) {
		plan, err := BuildPlan(mustParse(t, map[string]interface{}{"stylistic": false}), testEnv(t))
		require.NoError(t, err)
		assert.Nil(t, plan.Flags.Stylistic)
	})

	t.Run("editor from environment", func(t *testing.T) {
		env := testEnv(t)
		env.Getenv = func(k string) string {
			if k == "VSCODE_PID" {
				return "42"
			}
			return ""
		}
		plan, err := BuildPlan(nil, env)
		require.NoError(t, err)
		assert.True(t, plan.Flags.IsInEditor)
	})

	t.Run("editor forced off in CI", func(t *testing.T) {
		env := testEnv(t)
		env.Getenv = func(k string) string {
			switch k {
			case "VSCODE_PID", "CI":
				return "1"
			}
			return ""
		}
		plan, err := BuildPlan(nil, env)
		require.NoError(t, err)
		assert.False(t, plan.Flags.IsInEditor)
	})

	t.Run("typescript flag shared by every step", func(t *testing.T) {
		plan, err := BuildPlan(mustParse(t, map[string]interface{}{"typescript": true}), testEnv(t))
		require.NoError(t, err)
		for _, s := range plan.Steps {
			assert.True(t, s.Input.Flags.TypeScript, s.Domain)
		}
	})
}

func TestBuildPlanUnknownDomain(t *testing.T) {
	plan, err := BuildPlan(mustParse(t, map[string]interface{}{"ember": true}), testEnv(t))
	require.NoError(t, err)
	assert.NotContains(t, plan.Domains(), "ember")
}

func TestEnvironmentOverrides(t *testing.T) {
	env := testEnv(t)
	env.Disables = types.NewRules().Off("@stylistic/semi")
	env.DisableFiles = []string{"**/*.css"}

	frags := define(t, nil, env)
	last := frags[len(frags)-1]
	assert.Equal(t, []string{"style/semi"}, last.Rules.Keys())
	assert.Equal(t, []string{"**/*.css"}, last.Files)
}
