package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// IgnoresDomain holds the default global ignores.
const IgnoresDomain = "ignores"

type ignoresOptions struct {
	Extra []string `mapstructure:"extra"`
}

type ignoresProducer struct{}

func (ignoresProducer) Domain() string { return IgnoresDomain }

func (ignoresProducer) Description() string {
	return "Default global ignores: build output, lock files, caches"
}

func (ignoresProducer) Produce(_ context.Context, in Input) ([]types.Fragment, error) {
	var opts ignoresOptions
	if err := in.Options.Decode(&opts); err != nil {
		return nil, err
	}
	ignores := append(append([]string{}, globs.Exclude...), opts.Extra...)
	return []types.Fragment{{
		Name:    Name(IgnoresDomain, ""),
		Ignores: ignores,
	}}, nil
}

func init() {
	MustRegister(ignoresProducer{})
}
