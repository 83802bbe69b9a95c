package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// TOMLDomain holds rules for TOML files.
const TOMLDomain = "toml"

const (
	pkgTOML       = "eslint-plugin-toml"
	pkgTOMLParser = "toml-eslint-parser"
)

type tomlProducer struct{}

func (tomlProducer) Domain() string { return TOMLDomain }

func (tomlProducer) Description() string {
	return "TOML files"
}

func (tomlProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	defs, err := requirePackages(ctx, in, TOMLDomain, pkgTOML, pkgTOMLParser)
	if err != nil {
		return nil, err
	}
	plugin, parser := defs[0], defs[1]
	ns := plugin.Namespace

	adjust := types.NewRules().
		Off("@stylistic/spaced-comment").
		Error(ns+"/comma-style").
		Error(ns+"/keys-order").
		Error(ns+"/no-space-dots").
		Error(ns+"/no-unreadable-number-separator").
		Error(ns+"/precision-of-fractional-seconds").
		Error(ns+"/precision-of-integer").
		Error(ns+"/tables-order").
		Error(ns+"/vue-custom-block/no-parsing-error")

	if s := in.Flags.Stylistic; s != nil {
		adjust.Error(ns+"/array-bracket-newline").
			Error(ns+"/array-bracket-spacing").
			Error(ns+"/array-element-newline").
			Error(ns+"/indent", tomlIndent(s)).
			Error(ns+"/inline-table-curly-spacing").
			Error(ns+"/key-spacing").
			Error(ns+"/padding-line-between-pairs").
			Error(ns+"/padding-line-between-tables").
			Error(ns+"/quoted-keys").
			Error(ns+"/spaced-comment").
			Error(ns+"/table-bracket-spacing")
	}

	return []types.Fragment{
		{
			Name:    Name(TOMLDomain, "setup"),
			Plugins: map[string]*types.PluginDefinition{ns: plugin},
		},
		{
			Name:  Name(TOMLDomain, "rules"),
			Files: in.FilesOr(globs.TOML),
			LanguageOptions: &types.LanguageOptions{
				Parser: parser,
			},
			Rules: types.MergeRules(adjust, in.Overrides()),
		},
	}, nil
}

// tomlIndent keeps tabs and otherwise indents by two spaces.
func tomlIndent(s *options.Stylistic) interface{} {
	if s.UseTabs() {
		return "tab"
	}
	return 2
}

func init() {
	MustRegister(tomlProducer{})
}
