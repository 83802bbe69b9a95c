package loader

import (
	"context"
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/probe"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Packages []*types.PluginDefinition `yaml:"packages"`
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(data []byte) ([]*types.PluginDefinition, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse package catalog")
	}
	seen := make(map[string]bool, len(f.Packages))
	for _, p := range f.Packages {
		if p.ID == "" {
			return nil, errors.New(errors.ErrConfigParse, "catalog entry without id")
		}
		if seen[p.ID] {
			return nil, errors.Newf(errors.ErrConfigParse, "catalog lists %q twice", p.ID)
		}
		seen[p.ID] = true
	}
	return f.Packages, nil
}

var (
	builtinOnce sync.Once
	builtinDefs []*types.PluginDefinition
)

// Builtin returns the definitions of the embedded catalog.
func Builtin() []*types.PluginDefinition {
	builtinOnce.Do(func() {
		defs, err := ParseCatalog(embeddedCatalog)
		if err != nil {
			panic(err)
		}
		builtinDefs = defs
	})
	return builtinDefs
}

// Catalog serves definitions from a fixed list. Bundled packages always
// load; optional ones load only when installed reports them.
type Catalog struct {
	defs      map[string]*types.PluginDefinition
	order     []string
	installed probe.DependencyOracle
}

// NewCatalog serves the embedded catalog.
func NewCatalog(installed probe.DependencyOracle) *Catalog {
	return NewCatalogFrom(Builtin(), installed)
}

// NewCatalogFrom serves defs.
func NewCatalogFrom(defs []*types.PluginDefinition, installed probe.DependencyOracle) *Catalog {
	c := &Catalog{
		defs:      make(map[string]*types.PluginDefinition, len(defs)),
		installed: installed,
	}
	for _, d := range defs {
		if _, dup := c.defs[d.ID]; !dup {
			c.order = append(c.order, d.ID)
		}
		c.defs[d.ID] = d
	}
	return c
}

func (c *Catalog) Load(ctx context.Context, id string) (*types.PluginDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	def, ok := c.defs[id]
	if !ok {
		return nil, NotFound(id)
	}
	if !def.Bundled && (c.installed == nil || !c.installed.HasDependency(id)) {
		return nil, NotFound(id)
	}
	return def, nil
}

// Lookup returns a definition whether or not it is installed.
func (c *Catalog) Lookup(id string) (*types.PluginDefinition, bool) {
	def, ok := c.defs[id]
	return def, ok
}

// IDs lists package ids in catalog order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}
