// Package probe decides which optional domains are enabled by default by
// looking at the dependencies the host project declares.
package probe

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/tidwall/jsonc"

	"github.com/arthur-debert/flatcompose/pkg/logging"
)

// DependencyOracle answers whether the project depends on a package.
type DependencyOracle interface {
	HasDependency(name string) bool
}

// OracleFunc adapts a function to DependencyOracle.
type OracleFunc func(name string) bool

func (f OracleFunc) HasDependency(name string) bool { return f(name) }

// Candidates maps a domain to the packages whose presence enables it.
type Candidates map[string][]string

// DefaultCandidates are the probe lists used when the config does not
// override them. Domains not listed are never enabled by probing.
var DefaultCandidates = Candidates{
	"typescript":  {"typescript"},
	"vue":         {"vue", "nuxt", "vitepress", "@slidev/cli"},
	"react":       {"react"},
	"next":        {"next"},
	"tailwindcss": {"tailwindcss"},
}

// Clone returns a copy merged with overrides; an override replaces the
// whole candidate list of its domain.
func (c Candidates) Clone(overrides Candidates) Candidates {
	out := make(Candidates, len(c)+len(overrides))
	for k, v := range c {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range overrides {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Domains returns the probed domain keys, sorted.
func (c Candidates) Domains() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Prober evaluates candidate lists against an oracle.
type Prober struct {
	oracle     DependencyOracle
	candidates Candidates
	logger     zerolog.Logger
}

// New returns a prober over oracle. A nil candidates map means
// DefaultCandidates.
func New(oracle DependencyOracle, candidates Candidates) *Prober {
	if candidates == nil {
		candidates = DefaultCandidates
	}
	return &Prober{
		oracle:     oracle,
		candidates: candidates,
		logger:     logging.GetLogger("probe"),
	}
}

// Probe is true iff any candidate is a declared dependency. It never fails.
func (p *Prober) Probe(candidates ...string) bool {
	if p == nil || p.oracle == nil {
		return false
	}
	for _, name := range candidates {
		if p.oracle.HasDependency(name) {
			return true
		}
	}
	return false
}

// Domain probes the candidate list configured for domain.
func (p *Prober) Domain(domain string) bool {
	if p == nil {
		return false
	}
	found := p.Probe(p.candidates[domain]...)
	p.logger.Debug().Str("domain", domain).Strs("candidates", p.candidates[domain]).Bool("found", found).Msg("probed domain")
	return found
}

// Finding is the probe result for one domain, for reporting.
type Finding struct {
	Domain     string
	Candidates []string
	Matched    []string
}

// Report probes every configured domain and lists which candidates matched.
func (p *Prober) Report() []Finding {
	if p == nil {
		return nil
	}
	out := make([]Finding, 0, len(p.candidates))
	for _, domain := range p.candidates.Domains() {
		f := Finding{Domain: domain, Candidates: p.candidates[domain]}
		for _, c := range f.Candidates {
			if p.oracle != nil && p.oracle.HasDependency(c) {
				f.Matched = append(f.Matched, c)
			}
		}
		out = append(out, f)
	}
	return out
}

// Enabled reports whether the finding turned the domain on.
func (f Finding) Enabled() bool { return len(f.Matched) > 0 }

// manifest is the part of package.json the oracle reads.
type manifest struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// ManifestOracle answers from the dependency sections of a package.json.
type ManifestOracle struct {
	deps map[string]struct{}
}

// ReadManifest loads dir/package.json. An absent, unreadable or malformed
// manifest yields an oracle with no dependencies.
func ReadManifest(dir string) *ManifestOracle {
	logger := logging.GetLogger("probe")
	o := &ManifestOracle{deps: map[string]struct{}{}}

	path := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("no readable manifest")
		return o
	}

	var m manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("malformed manifest")
		return o
	}

	for _, section := range []map[string]string{m.Dependencies, m.DevDependencies, m.PeerDependencies, m.OptionalDependencies} {
		for name := range section {
			o.deps[name] = struct{}{}
		}
	}
	return o
}

func (o *ManifestOracle) HasDependency(name string) bool {
	if o == nil {
		return false
	}
	_, ok := o.deps[name]
	return ok
}

// Names lists the declared dependencies, sorted.
func (o *ManifestOracle) Names() []string {
	if o == nil {
		return nil
	}
	out := make([]string, 0, len(o.deps))
	for name := range o.deps {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ModulesOracle reports a package as present when it is installed in a
// node_modules directory of dir or any of its ancestors.
type ModulesOracle struct {
	Dir string
}

func (o ModulesOracle) HasDependency(name string) bool {
	dir, err := filepath.Abs(o.Dir)
	if err != nil {
		return false
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "node_modules", filepath.FromSlash(name), "package.json")); err == nil {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// StaticOracle is a fixed dependency set.
type StaticOracle map[string]bool

// Static builds a StaticOracle from names.
func Static(names ...string) StaticOracle {
	o := make(StaticOracle, len(names))
	for _, n := range names {
		o[n] = true
	}
	return o
}

func (o StaticOracle) HasDependency(name string) bool { return o[name] }

// AnyOracle is true when any of its oracles is.
type AnyOracle []DependencyOracle

func (o AnyOracle) HasDependency(name string) bool {
	for _, inner := range o {
		if inner != nil && inner.HasDependency(name) {
			return true
		}
	}
	return false
}
