package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// UnoCSSDomain holds UnoCSS utility class rules.
const UnoCSSDomain = "unocss"

const pkgUnoCSS = "@unocss/eslint-plugin"

type unocssOptions struct {
	// Attributify also orders attributify-mode attributes
	Attributify bool `mapstructure:"attributify"`
	// Strict rejects blocklisted utilities
	Strict bool `mapstructure:"strict"`
}

type unocssProducer struct{}

func (unocssProducer) Domain() string { return UnoCSSDomain }

func (unocssProducer) Description() string {
	return "UnoCSS utility ordering and blocklist"
}

func (unocssProducer) Packages() []string { return []string{pkgUnoCSS} }

func (unocssProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	var opts unocssOptions
	if err := in.Options.Decode(&opts); err != nil {
		return nil, err
	}
	def, err := requireOne(ctx, in, UnoCSSDomain, pkgUnoCSS)
	if err != nil {
		return nil, err
	}
	ns := def.Namespace

	adjust := types.NewRules().Warn(ns + "/order")
	if opts.Attributify {
		adjust.Warn(ns + "/order-attributify")
	}
	if opts.Strict {
		adjust.Error(ns + "/blocklist")
	}

	return []types.Fragment{{
		Name:    Name(UnoCSSDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{ns: def},
		Rules:   types.MergeRules(adjust, in.Overrides()),
	}}, nil
}

func init() {
	MustRegister(unocssProducer{})
}
