package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// UnicornDomain holds assorted modern-JavaScript rules.
const UnicornDomain = "unicorn"

const pkgUnicorn = "eslint-plugin-unicorn"

type unicornOptions struct {
	// AllRecommended starts from the plugin's whole recommended preset
	// instead of a curated subset
	AllRecommended bool `mapstructure:"allRecommended"`
}

type unicornProducer struct{}

func (unicornProducer) Domain() string { return UnicornDomain }

func (unicornProducer) Description() string {
	return "Modern JavaScript idioms"
}

func (unicornProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	var opts unicornOptions
	if err := in.Options.Decode(&opts); err != nil {
		return nil, err
	}
	def, err := requireOne(ctx, in, UnicornDomain, pkgUnicorn)
	if err != nil {
		return nil, err
	}
	ns := def.Namespace

	base := types.NewRules()
	if opts.AllRecommended {
		base = def.Config("flat/recommended")
	}
	adjust := types.NewRules().
		Error(ns + "/consistent-empty-array-spread").
		Error(ns + "/error-message").
		Error(ns + "/escape-case").
		Error(ns + "/new-for-builtins").
		Error(ns + "/no-instanceof-builtins").
		Error(ns + "/no-new-array").
		Error(ns + "/no-new-buffer").
		Error(ns + "/number-literal-case").
		Error(ns + "/prefer-dom-node-text-content").
		Error(ns + "/prefer-includes").
		Error(ns + "/prefer-node-protocol").
		Error(ns + "/prefer-number-properties").
		Error(ns + "/prefer-string-starts-ends-with").
		Error(ns + "/prefer-type-error").
		Error(ns + "/throw-new-error")

	return []types.Fragment{{
		Name:    Name(UnicornDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{ns: def},
		Rules:   types.MergeRules(base, adjust, in.Overrides()),
	}}, nil
}

func init() {
	MustRegister(unicornProducer{})
}
