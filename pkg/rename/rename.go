// Package rename rewrites plugin namespaces across a fragment list:
// registration keys of Plugins and the prefix of every rule id.
package rename

import (
	"sort"
	"strings"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Table maps old namespaces to new ones.
type Table struct {
	pairs map[string]string
	// keys sorted longest first so the most specific namespace wins
	keys []string
}

// DefaultTable shortens the upstream plugin namespaces.
var DefaultTable = MustTable(map[string]string{
	"@eslint-react":                   "react",
	"@eslint-react/dom":               "react-dom",
	"@eslint-react/hooks-extra":       "react-hooks-extra",
	"@eslint-react/naming-convention": "react-naming-convention",
	"@stylistic":                      "style",
	"@typescript-eslint":              "ts",
	"import-x":                        "import",
	"n":                               "node",
	"vitest":                          "test",
	"yml":                             "yaml",
	"@next/next":                      "next",
})

// NewTable validates pairs. A new namespace may not overlap an old one, in
// either direction, so renaming is idempotent.
func NewTable(pairs map[string]string) (*Table, error) {
	t := &Table{pairs: make(map[string]string, len(pairs))}
	for from, to := range pairs {
		if from == "" || to == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "rename %q -> %q: namespaces cannot be empty", from, to)
		}
		if strings.HasSuffix(from, "/") || strings.HasSuffix(to, "/") {
			return nil, errors.Newf(errors.ErrInvalidInput, "rename %q -> %q: namespaces cannot end with /", from, to)
		}
		t.pairs[from] = to
	}
	for from, to := range t.pairs {
		for other := range t.pairs {
			if strings.HasPrefix(to+"/", other+"/") || strings.HasPrefix(other+"/", to+"/") {
				return nil, errors.Newf(errors.ErrInvalidInput,
					"rename %q -> %q: %q would be renamed again by %q", from, to, to, other).
					WithDetail("namespace", to)
			}
		}
	}

	for from := range t.pairs {
		t.keys = append(t.keys, from)
	}
	sort.Slice(t.keys, func(i, j int) bool {
		if len(t.keys[i]) != len(t.keys[j]) {
			return len(t.keys[i]) > len(t.keys[j])
		}
		return t.keys[i] < t.keys[j]
	})
	return t, nil
}

// MustTable is NewTable for static tables.
func MustTable(pairs map[string]string) *Table {
	t, err := NewTable(pairs)
	if err != nil {
		panic(err)
	}
	return t
}

// Merge returns a table with extra layered over t. An empty target in extra
// removes the pair.
func (t *Table) Merge(extra map[string]string) (*Table, error) {
	pairs := t.Pairs()
	for from, to := range extra {
		if to == "" {
			delete(pairs, from)
			continue
		}
		pairs[from] = to
	}
	return NewTable(pairs)
}

// Pairs returns a copy of the mapping.
func (t *Table) Pairs() map[string]string {
	out := make(map[string]string, len(t.pairs))
	for k, v := range t.pairs {
		out[k] = v
	}
	return out
}

// Len counts pairs.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.pairs)
}

// Namespace renames a plugin registration key.
func (t *Table) Namespace(ns string) string {
	if t == nil {
		return ns
	}
	if to, ok := t.pairs[ns]; ok {
		return to
	}
	return ns
}

// RuleID renames a rule id of shape namespace/rule. The longest matching
// namespace wins, so "@eslint-react/dom/x" becomes "react-dom/x".
func (t *Table) RuleID(id string) string {
	if t == nil {
		return id
	}
	for _, from := range t.keys {
		if strings.HasPrefix(id, from+"/") {
			return t.pairs[from] + id[len(from):]
		}
	}
	return id
}

// Rules renames every rule id. When two ids map to the same name the later
// one wins, in the position of the first.
func Rules(r *types.Rules, t *Table) *types.Rules {
	if r == nil {
		return nil
	}
	out := types.NewRules()
	for _, rule := range r.List() {
		out.Set(t.RuleID(rule.ID), rule.Config)
	}
	return out
}

// Plugins renames registration keys. When an old and a new spelling are
// both registered, the registration already under the new name is kept.
func Plugins(p map[string]*types.PluginDefinition, t *Table) map[string]*types.PluginDefinition {
	if p == nil {
		return nil
	}
	out := make(map[string]*types.PluginDefinition, len(p))
	for ns, def := range p {
		if t.Namespace(ns) == ns {
			out[ns] = def
		}
	}
	for ns, def := range p {
		renamed := t.Namespace(ns)
		if renamed == ns {
			continue
		}
		if _, taken := out[renamed]; !taken {
			out[renamed] = def
		}
	}
	return out
}

// Fragments returns renamed clones of frags. The input is not modified.
func Fragments(frags []types.Fragment, t *Table) []types.Fragment {
	out := make([]types.Fragment, len(frags))
	for i, f := range frags {
		c := f.Clone()
		c.Rules = Rules(c.Rules, t)
		c.Plugins = Plugins(c.Plugins, t)
		if c.Processor != nil {
			c.Processor.Name = t.RuleID(c.Processor.Name)
			for j, name := range c.Processor.Merge {
				c.Processor.Merge[j] = t.RuleID(name)
			}
		}
		out[i] = c
	}
	return out
}
