package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestProbe(t *testing.T) {
	p := New(Static("vue", "typescript"), nil)

	tests := []struct {
		name       string
		candidates []string
		want       bool
	}{
		{"single hit", []string{"typescript"}, true},
		{"any of several", []string{"nuxt", "vue"}, true},
		{"miss", []string{"react"}, false},
		{"empty list", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Probe(tt.candidates...))
		})
	}
}

func TestProbeDomain(t *testing.T) {
	p := New(Static("vitepress"), nil)
	assert.True(t, p.Domain("vue"))
	assert.False(t, p.Domain("react"))
	assert.False(t, p.Domain("svelte"), "unlisted domains are never probed on")

	custom := New(Static("preact"), DefaultCandidates.Clone(Candidates{"react": {"react", "preact"}}))
	assert.True(t, custom.Domain("react"))
	assert.Equal(t, []string{"react"}, DefaultCandidates["react"], "defaults are not mutated")
}

func TestNilProberNeverFails(t *testing.T) {
	var p *Prober
	assert.False(t, p.Probe("x"))
	assert.False(t, p.Domain("vue"))
	assert.Nil(t, p.Report())
	assert.False(t, New(nil, nil).Probe("x"))
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{
		// comments are tolerated
		"dependencies": {"vue": "^3.4.0"},
		"devDependencies": {"typescript": "^5.0.0",},
		"peerDependencies": {"react": "*"},
		"optionalDependencies": {"fsevents": "*"}
	}`)

	o := ReadManifest(dir)
	for _, name := range []string{"vue", "typescript", "react", "fsevents"} {
		assert.True(t, o.HasDependency(name), name)
	}
	assert.False(t, o.HasDependency("svelte"))
	assert.Equal(t, []string{"fsevents", "react", "typescript", "vue"}, o.Names())
}

func TestReadManifestFailuresYieldNothing(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		o := ReadManifest(t.TempDir())
		assert.False(t, o.HasDependency("vue"))
		assert.Empty(t, o.Names())
	})

	t.Run("malformed", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"dependencies": [`)
		assert.False(t, ReadManifest(dir).HasDependency("vue"))
	})

	t.Run("wrong shape", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"dependencies": ["vue"]}`)
		assert.False(t, ReadManifest(dir).HasDependency("vue"))
	})
}

func TestModulesOracleWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "@vue", "compiler-sfc", "package.json"), `{}`)
	writeFile(t, filepath.Join(root, "packages", "app", "node_modules", "svelte", "package.json"), `{}`)

	app := filepath.Join(root, "packages", "app")
	o := ModulesOracle{Dir: app}
	assert.True(t, o.HasDependency("svelte"))
	assert.True(t, o.HasDependency("@vue/compiler-sfc"))
	assert.False(t, o.HasDependency("astro"))

	assert.False(t, ModulesOracle{Dir: root}.HasDependency("svelte"))
}

func TestAnyOracle(t *testing.T) {
	o := AnyOracle{Static("a"), nil, OracleFunc(func(n string) bool { return n == "b" })}
	assert.True(t, o.HasDependency("a"))
	assert.True(t, o.HasDependency("b"))
	assert.False(t, o.HasDependency("c"))
}

func TestReport(t *testing.T) {
	p := New(Static("nuxt", "typescript"), nil)
	report := p.Report()

	byDomain := map[string]Finding{}
	for _, f := range report {
		byDomain[f.Domain] = f
	}
	assert.Len(t, report, len(DefaultCandidates))
	assert.True(t, byDomain["vue"].Enabled())
	assert.Equal(t, []string{"nuxt"}, byDomain["vue"].Matched)
	assert.False(t, byDomain["react"].Enabled())
	assert.Equal(t, "next", report[0].Domain)
}
