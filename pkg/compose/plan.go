package compose

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/loader"
	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/probe"
	"github.com/arthur-debert/flatcompose/pkg/producers"
	"github.com/arthur-debert/flatcompose/pkg/rename"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Order is the fixed position of every domain in the composed list.
var Order = []string{
	producers.GitignoreDomain,
	producers.IgnoresDomain,
	producers.JavascriptDomain,
	producers.CommentsDomain,
	producers.NodeDomain,
	producers.JSDocDomain,
	producers.ImportsDomain,
	producers.PerfectionistDomain,
	producers.UnicornDomain,
	producers.RegexpDomain,
	producers.JSXDomain,
	producers.TypescriptDomain,
	producers.StylisticDomain,
	producers.TestDomain,
	producers.VueDomain,
	producers.NextDomain,
	producers.ReactDomain,
	producers.SvelteDomain,
	producers.UnoCSSDomain,
	producers.TailwindDomain,
	producers.AstroDomain,
	producers.JSONCDomain,
	producers.SortPackageJSONDomain,
	producers.SortTSConfigDomain,
	producers.YAMLDomain,
	producers.TOMLDomain,
	producers.MarkdownDomain,
	producers.FormattersDomain,
}

// Environment holds the collaborators of a composition. Zero fields get
// defaults derived from Dir.
type Environment struct {
	// Dir is the project root, "." when empty
	Dir string

	// Oracle answers which packages the project declares; defaults to the
	// project's package.json
	Oracle probe.DependencyOracle

	// Candidates override the default probe lists per domain
	Candidates probe.Candidates

	// Loader resolves package handles; defaults to the shared catalog
	// cache for Dir
	Loader loader.Loader

	// Getenv is used for editor detection; defaults to os.Getenv
	Getenv func(string) string

	// Rename replaces the default namespace table
	Rename *rename.Table

	// Disables replaces the rules of the terminal disables fragment, and
	// DisableFiles its scope
	Disables     *types.Rules
	DisableFiles []string
}

func (e Environment) withDefaults() Environment {
	if e.Dir == "" {
		e.Dir = "."
	}
	if e.Oracle == nil {
		e.Oracle = probe.ReadManifest(e.Dir)
	}
	if e.Loader == nil {
		e.Loader = loader.ForDir(e.Dir)
	}
	if e.Getenv == nil {
		e.Getenv = os.Getenv
	}
	if e.Rename == nil {
		e.Rename = rename.DefaultTable
	}
	if e.Disables == nil {
		e.Disables = DefaultDisables()
	}
	if e.DisableFiles == nil {
		e.DisableFiles = DefaultDisableFiles()
	}
	return e
}

// Step is one enabled domain with its resolved input.
type Step struct {
	Domain   string
	Producer producers.Producer
	Input    producers.Input
}

// Plan is the resolved, ordered work of one composition.
type Plan struct {
	Steps []Step
	Flags producers.Flags

	// Fused is the fragment built from top-level flat-config keys
	Fused    options.FragmentSpec
	HasFused bool

	AutoRename bool
	Rename     *rename.Table

	Disables     *types.Rules
	DisableFiles []string

	Loader loader.Loader
}

// Domains lists the planned domains in order.
func (p *Plan) Domains() []string {
	out := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Domain
	}
	return out
}

// BuildPlan resolves which domains run and what each one receives.
func BuildPlan(cfg *options.OptionsConfig, env Environment) (*Plan, error) {
	logger := logging.GetLogger("compose.plan")
	if cfg == nil {
		cfg = options.New()
	}
	if cfg.HasFiles {
		return nil, errors.ConfigurationConflict("files")
	}
	env = env.withDefaults()

	known := make(map[string]bool, len(Order))
	for _, d := range Order {
		known[options.Normalize(d)] = true
	}
	for _, d := range cfg.Domains() {
		if !known[d] {
			logger.Warn().Str("option", d).Msg("Unknown option ignored")
		}
	}

	prober := probe.New(env.Oracle, probe.DefaultCandidates.Clone(env.Candidates))
	defaults := domainDefaults(cfg, prober, env.Dir)

	enabled := make(map[string]bool, len(Order))
	for _, d := range Order {
		switch d {
		case producers.JSXDomain:
			enabled[d] = cfg.JSX == nil || *cfg.JSX
		default:
			enabled[d] = options.Enabled(cfg, d, defaults[d])
		}
	}

	style, err := options.ResolveStylistic(cfg)
	if err != nil {
		return nil, err
	}
	enabled[producers.StylisticDomain] = style != nil

	exts := append([]string{}, cfg.ComponentExts...)
	if enabled[producers.VueDomain] && !contains(exts, "vue") {
		exts = append(exts, "vue")
	}

	flags := producers.Flags{
		TypeScript:    enabled[producers.TypescriptDomain],
		Stylistic:     style,
		ComponentExts: exts,
		IsInEditor:    options.InEditor(cfg, env.Getenv),
		Dir:           env.Dir,
	}

	plan := &Plan{
		Flags:        flags,
		Fused:        cfg.Fused,
		HasFused:     cfg.HasFused(),
		AutoRename:   options.AutoRename(cfg),
		Rename:       env.Rename,
		Disables:     env.Disables,
		DisableFiles: env.DisableFiles,
		Loader:       env.Loader,
	}
	for _, d := range Order {
		if !enabled[d] {
			continue
		}
		p, err := producers.Get(d)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "no producer for domain %q", d)
		}
		plan.Steps = append(plan.Steps, Step{
			Domain:   d,
			Producer: p,
			Input: producers.Input{
				Options: options.ResolveSubOptions(cfg, d),
				Flags:   flags,
				Loader:  env.Loader,
			},
		})
	}

	logger.Debug().
		Strs("domains", plan.Domains()).
		Bool("typescript", flags.TypeScript).
		Bool("inEditor", flags.IsInEditor).
		Msg("Plan built")
	return plan, nil
}

// domainDefaults is the enablement used when the caller leaves a domain
// unset.
func domainDefaults(cfg *options.OptionsConfig, prober *probe.Prober, dir string) map[string]bool {
	_, err := os.Stat(filepath.Join(dir, ".gitignore"))
	jsonc := options.Enabled(cfg, producers.JSONCDomain, true)

	return map[string]bool{
		producers.GitignoreDomain:       err == nil,
		producers.IgnoresDomain:         true,
		producers.JavascriptDomain:      true,
		producers.CommentsDomain:        true,
		producers.NodeDomain:            true,
		producers.JSDocDomain:           true,
		producers.ImportsDomain:         true,
		producers.PerfectionistDomain:   true,
		producers.UnicornDomain:         true,
		producers.RegexpDomain:          true,
		producers.TypescriptDomain:      prober.Domain(producers.TypescriptDomain),
		producers.TestDomain:            true,
		producers.VueDomain:             prober.Domain(producers.VueDomain),
		producers.NextDomain:            prober.Domain(producers.NextDomain),
		producers.ReactDomain:           prober.Domain(producers.ReactDomain),
		producers.SvelteDomain:          false,
		producers.UnoCSSDomain:          false,
		producers.TailwindDomain:        prober.Domain(producers.TailwindDomain),
		producers.AstroDomain:           false,
		producers.JSONCDomain:           true,
		producers.SortPackageJSONDomain: jsonc,
		producers.SortTSConfigDomain:    jsonc,
		producers.YAMLDomain:            true,
		producers.TOMLDomain:            true,
		producers.MarkdownDomain:        true,
		producers.FormattersDomain:      false,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
