package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// RegexpDomain checks regular expression literals.
const RegexpDomain = "regexp"

const pkgRegexp = "eslint-plugin-regexp"

type regexpOptions struct {
	// Level caps the preset's severities; "warn" downgrades every error
	Level string `mapstructure:"level"`
}

type regexpProducer struct{}

func (regexpProducer) Domain() string { return RegexpDomain }

func (regexpProducer) Description() string {
	return "Regular expression correctness and style"
}

func (regexpProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	opts := regexpOptions{Level: "error"}
	if err := in.Options.Decode(&opts); err != nil {
		return nil, err
	}
	level, err := types.ParseLevel(opts.Level)
	if err != nil || level == types.LevelOff {
		return nil, errors.Newf(errors.ErrInvalidInput, "regexp level must be warn or error, got %q", opts.Level)
	}

	def, err := requireOne(ctx, in, RegexpDomain, pkgRegexp)
	if err != nil {
		return nil, err
	}

	preset := def.Config("flat/recommended")
	if level == types.LevelWarn {
		for _, r := range preset.List() {
			if r.Config.Level == types.LevelError {
				r.Config.Level = types.LevelWarn
				preset.Set(r.ID, r.Config)
			}
		}
	}

	return []types.Fragment{{
		Name:    Name(RegexpDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{def.Namespace: def},
		Rules:   types.MergeRules(preset, in.Overrides()),
	}}, nil
}

func init() {
	MustRegister(regexpProducer{})
}
