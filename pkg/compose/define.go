package compose

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Define parses a raw options object, plans and composes it in one call.
func Define(ctx context.Context, raw map[string]interface{}, env Environment, user ...[]types.Fragment) ([]types.Fragment, error) {
	cfg, err := options.Parse(raw)
	if err != nil {
		return nil, err
	}
	plan, err := BuildPlan(cfg, env)
	if err != nil {
		return nil, err
	}
	return Compose(ctx, plan, user...)
}
