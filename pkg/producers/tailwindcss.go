package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// TailwindDomain holds Tailwind CSS class rules.
const TailwindDomain = "tailwindcss"

const pkgTailwind = "@mastondzn/eslint-plugin-tailwindcss"

type tailwindProducer struct{}

func (tailwindProducer) Domain() string { return TailwindDomain }

func (tailwindProducer) Description() string {
	return "Tailwind CSS class ordering and validity"
}

func (tailwindProducer) Packages() []string { return []string{pkgTailwind} }

// Produce passes every option other than overrides and files to the plugin
// as its settings.
func (tailwindProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	def, err := requireOne(ctx, in, TailwindDomain, pkgTailwind)
	if err != nil {
		return nil, err
	}
	settings := types.CloneMap(in.Options.Extra)
	if settings == nil {
		settings = M{}
	}
	return []types.Fragment{{
		Name:     Name(TailwindDomain, "rules"),
		Plugins:  map[string]*types.PluginDefinition{def.Namespace: def},
		Rules:    types.MergeRules(def.Config("recommended"), in.Overrides()),
		Settings: M{def.Namespace: settings},
	}}, nil
}

func init() {
	MustRegister(tailwindProducer{})
}
