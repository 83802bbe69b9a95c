package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// PerfectionistDomain sorts imports, exports and named members.
const PerfectionistDomain = "perfectionist"

const pkgPerfectionist = "eslint-plugin-perfectionist"

type perfectionistProducer struct{}

func (perfectionistProducer) Domain() string { return PerfectionistDomain }

func (perfectionistProducer) Description() string {
	return "Sorting of imports, exports and named members"
}

func (perfectionistProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	def, err := requireOne(ctx, in, PerfectionistDomain, pkgPerfectionist)
	if err != nil {
		return nil, err
	}
	ns := def.Namespace
	natural := M{"order": "asc", "type": "natural"}
	adjust := types.NewRules().
		Error(ns+"/sort-exports", natural).
		Error(ns+"/sort-imports", M{
			"groups": []interface{}{
				"type",
				[]interface{}{"parent-type", "sibling-type", "index-type", "internal-type"},
				"builtin",
				"external",
				"internal",
				[]interface{}{"parent", "sibling", "index"},
				"side-effect",
				"object",
				"unknown",
			},
			"newlinesBetween": "ignore",
			"order":           "asc",
			"type":            "natural",
		}).
		Error(ns+"/sort-named-exports", natural).
		Error(ns+"/sort-named-imports", natural)

	return []types.Fragment{{
		Name:    Name(PerfectionistDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{ns: def},
		Rules:   types.MergeRules(adjust, in.Overrides()),
	}}, nil
}

func init() {
	MustRegister(perfectionistProducer{})
}
