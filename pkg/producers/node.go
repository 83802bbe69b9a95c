package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// NodeDomain holds Node.js runtime rules.
const NodeDomain = "node"

const pkgNode = "eslint-plugin-n"

type nodeProducer struct{}

func (nodeProducer) Domain() string { return NodeDomain }

func (nodeProducer) Description() string {
	return "Node.js runtime rules"
}

func (nodeProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	def, err := requireOne(ctx, in, NodeDomain, pkgNode)
	if err != nil {
		return nil, err
	}
	ns := def.Namespace
	adjust := types.NewRules().
		Error(ns+"/handle-callback-err", "^(err|error)$").
		Error(ns + "/no-deprecated-api").
		Error(ns + "/no-exports-assign").
		Error(ns + "/no-new-require").
		Error(ns + "/no-path-concat").
		Error(ns+"/prefer-global/buffer", "never").
		Error(ns+"/prefer-global/process", "never").
		Error(ns + "/process-exit-as-throw")

	return []types.Fragment{{
		Name:    Name(NodeDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{ns: def},
		Rules:   types.MergeRules(adjust, in.Overrides()),
	}}, nil
}

func init() {
	MustRegister(nodeProducer{})
}
