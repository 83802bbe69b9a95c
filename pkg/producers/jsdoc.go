package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// JSDocDomain checks documentation comments.
const JSDocDomain = "jsdoc"

const pkgJSDoc = "eslint-plugin-jsdoc"

type jsdocProducer struct{}

func (jsdocProducer) Domain() string { return JSDocDomain }

func (jsdocProducer) Description() string {
	return "JSDoc comment validation"
}

func (jsdocProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	def, err := requireOne(ctx, in, JSDocDomain, pkgJSDoc)
	if err != nil {
		return nil, err
	}
	adjust := types.NewRules().
		Warn("jsdoc/check-access").
		Warn("jsdoc/check-param-names").
		Warn("jsdoc/check-property-names").
		Warn("jsdoc/check-types").
		Warn("jsdoc/empty-tags").
		Warn("jsdoc/implements-on-classes").
		Warn("jsdoc/no-defaults").
		Warn("jsdoc/no-multi-asterisks").
		Warn("jsdoc/require-param-name").
		Warn("jsdoc/require-property").
		Warn("jsdoc/require-property-description").
		Warn("jsdoc/require-property-name").
		Warn("jsdoc/require-returns-check").
		Warn("jsdoc/require-returns-description").
		Warn("jsdoc/require-yields-check")
	if in.Flags.Stylistic != nil {
		adjust.Warn("jsdoc/check-alignment").Warn("jsdoc/multiline-blocks")
	}

	return []types.Fragment{{
		Name:    Name(JSDocDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{def.Namespace: def},
		Rules:   types.MergeRules(def.Config("recommended"), adjust, in.Overrides()),
	}}, nil
}

func init() {
	MustRegister(jsdocProducer{})
}
