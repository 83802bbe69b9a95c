package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// NextDomain holds Next.js rules.
const NextDomain = "next"

const pkgNext = "@next/eslint-plugin-next"

type nextProducer struct{}

func (nextProducer) Domain() string { return NextDomain }

func (nextProducer) Description() string {
	return "Next.js recommended and core-web-vitals rules"
}

func (nextProducer) Packages() []string { return []string{pkgNext} }

func (nextProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	def, err := requireOne(ctx, in, NextDomain, pkgNext)
	if err != nil {
		return nil, err
	}
	return []types.Fragment{{
		Name:    Name(NextDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{def.Namespace: def},
		Rules: types.MergeRules(
			def.Config("recommended"),
			def.Config("core-web-vitals"),
			in.Overrides(),
		),
	}}, nil
}

func init() {
	MustRegister(nextProducer{})
}
