package producers

import (
	"context"
	"fmt"

	"github.com/arthur-debert/flatcompose/pkg/loader"
	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/registry"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// NamePrefix starts the name of every generated fragment.
const NamePrefix = "flatcompose"

// M is shorthand for rule parameters and settings.
type M = map[string]interface{}

// Flags are the cross-domain facts a producer may depend on.
type Flags struct {
	// TypeScript is true when the typescript domain is enabled
	TypeScript bool

	// Stylistic is nil when stylistic rules are disabled
	Stylistic *options.Stylistic

	// ComponentExts are extra file extensions handled by component
	// frameworks, without the dot, e.g. "vue"
	ComponentExts []string

	IsInEditor bool

	// Dir is the project root
	Dir string
}

// Input is everything a producer receives.
type Input struct {
	Options options.DomainOptions
	Flags   Flags
	Loader  loader.Loader
}

// Overrides returns the caller's overrides, never nil.
func (in Input) Overrides() *types.Rules {
	if in.Options.Overrides == nil {
		return types.NewRules()
	}
	return in.Options.Overrides.Clone()
}

// FilesOr returns the caller's files when given, else def.
func (in Input) FilesOr(def ...string) []string {
	if in.Options.Files != nil {
		return append([]string{}, in.Options.Files...)
	}
	return def
}

// Producer generates the fragments of one domain.
type Producer interface {
	Domain() string
	Description() string
	Produce(ctx context.Context, in Input) ([]types.Fragment, error)
}

// Requirer is implemented by producers whose packages must be installed in
// the project rather than bundled.
type Requirer interface {
	Packages() []string
}

var producers = registry.New[Producer]()

// Register adds a producer under its domain.
func Register(p Producer) error {
	return producers.Register(p.Domain(), p)
}

// MustRegister is Register for init functions.
func MustRegister(p Producer) {
	registry.MustRegister(producers, p.Domain(), p)
}

// Get returns the producer of a domain.
func Get(domain string) (Producer, error) {
	return producers.Get(domain)
}

// Has reports whether a domain has a producer.
func Has(domain string) bool {
	return producers.Has(domain)
}

// Domains lists registered domains alphabetically.
func Domains() []string {
	return producers.Sorted()
}

// Info describes a producer for listings.
type Info struct {
	Domain      string
	Description string
	Packages    []string
	Optional    bool
}

// Describe returns the listing entry of p.
func Describe(p Producer) Info {
	info := Info{Domain: p.Domain(), Description: p.Description()}
	if r, ok := p.(Requirer); ok {
		info.Packages = r.Packages()
		info.Optional = len(info.Packages) > 0
	}
	return info
}

// Name builds a fragment name, "flatcompose/<domain>/<part>".
func Name(domain, part string) string {
	if part == "" {
		return fmt.Sprintf("%s/%s", NamePrefix, domain)
	}
	return fmt.Sprintf("%s/%s/%s", NamePrefix, domain, part)
}

// requirePackages loads packages for domain through the input's loader.
func requirePackages(ctx context.Context, in Input, domain string, ids ...string) ([]*types.PluginDefinition, error) {
	return loader.Require(ctx, in.Loader, domain, ids...)
}

// componentGlobs turns extensions into globs, "vue" -> "**/*.vue".
func componentGlobs(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, "**/*."+ext)
	}
	return out
}

// dotted turns extensions into ".vue" form.
func dotted(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, "."+ext)
	}
	return out
}

// indentValue is the indent parameter stylistic rules expect.
func indentValue(s *options.Stylistic) interface{} {
	if s.UseTabs() {
		return "tab"
	}
	return s.IndentWidth()
}

func requireOne(ctx context.Context, in Input, domain, id string) (*types.PluginDefinition, error) {
	return loader.RequireOne(ctx, in.Loader, domain, id)
}

// processorOf names the first processor def provides, prefixed with its
// namespace when it has one. fallback is used when def lists none.
func processorOf(def *types.PluginDefinition, fallback string) string {
	name := fallback
	if len(def.Processors) > 0 {
		name = def.Processors[0]
	}
	if def.Namespace == "" {
		return name
	}
	return def.Namespace + "/" + name
}
