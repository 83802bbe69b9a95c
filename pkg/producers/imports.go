package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// ImportsDomain orders and checks import statements.
const ImportsDomain = "imports"

const pkgImport = "eslint-plugin-import-x"

type importsProducer struct{}

func (importsProducer) Domain() string { return ImportsDomain }

func (importsProducer) Description() string {
	return "Import statement hygiene"
}

func (importsProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	defs, err := requirePackages(ctx, in, ImportsDomain, pkgImport, pkgAntfu)
	if err != nil {
		return nil, err
	}
	imp, antfu := defs[0], defs[1]
	ns := imp.Namespace

	adjust := types.NewRules().
		Error("antfu/import-dedupe").
		Error("antfu/no-import-dist").
		Error("antfu/no-import-node-modules-by-path").
		Error(ns+"/consistent-type-specifier-style", "prefer-top-level").
		Error(ns + "/first").
		Error(ns + "/no-duplicates").
		Error(ns + "/no-mutable-exports").
		Error(ns + "/no-named-default").
		Error(ns + "/no-self-import").
		Error(ns + "/no-webpack-loader-syntax")
	if in.Flags.Stylistic != nil {
		adjust.Error(ns+"/newline-after-import", M{"count": 1})
	}

	return []types.Fragment{
		{
			Name: Name(ImportsDomain, "rules"),
			Plugins: map[string]*types.PluginDefinition{
				antfu.Namespace: antfu,
				ns:              imp,
			},
			Rules: types.MergeRules(adjust, in.Overrides()),
		},
		{
			// Executables conventionally import from their own package.
			Name:  Name(ImportsDomain, "bin"),
			Files: []string{"**/bin/**/*", "**/bin.{js,mjs,cjs,ts,mts,cts}"},
			Rules: types.NewRules().
				Off("antfu/no-import-dist").
				Off("antfu/no-import-node-modules-by-path"),
		},
	}, nil
}

func init() {
	MustRegister(importsProducer{})
}
