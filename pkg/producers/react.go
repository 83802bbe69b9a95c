package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// ReactDomain holds React component and hooks rules.
const ReactDomain = "react"

const (
	pkgReact        = "@eslint-react/eslint-plugin"
	pkgReactHooks   = "eslint-plugin-react-hooks"
	pkgReactRefresh = "eslint-plugin-react-refresh"
)

// The react plugin exposes its rule groups as separate namespaces.
var reactSubNamespaces = []string{"dom", "hooks-extra", "naming-convention"}

type reactProducer struct{}

func (reactProducer) Domain() string { return ReactDomain }

func (reactProducer) Description() string {
	return "React components, hooks and fast-refresh rules"
}

func (reactProducer) Packages() []string {
	return []string{pkgReact, pkgReactHooks, pkgReactRefresh}
}

func (reactProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	defs, err := requirePackages(ctx, in, ReactDomain, pkgReact, pkgReactHooks, pkgReactRefresh)
	if err != nil {
		return nil, err
	}
	react, hooks, refresh := defs[0], defs[1], defs[2]

	plugins := map[string]*types.PluginDefinition{
		react.Namespace:   react,
		hooks.Namespace:   hooks,
		refresh.Namespace: refresh,
	}
	for _, sub := range reactSubNamespaces {
		plugins[react.Namespace+"/"+sub] = react
	}

	tiers := []*types.Rules{react.Config("recommended"), hooks.Config("recommended")}
	if in.Flags.TypeScript {
		tiers = append(tiers, react.Config("type-checked"))
	}
	adjust := types.NewRules().
		Warn(refresh.Namespace+"/only-export-components", M{"allowConstantExport": true})
	tiers = append(tiers, adjust, in.Overrides())

	return []types.Fragment{
		{
			Name:    Name(ReactDomain, "setup"),
			Plugins: plugins,
		},
		{
			Name:  Name(ReactDomain, "rules"),
			Files: in.FilesOr(globs.Src),
			LanguageOptions: &types.LanguageOptions{
				ParserOptions: M{"ecmaFeatures": M{"jsx": true}},
				SourceType:    "module",
			},
			Rules: types.MergeRules(tiers...),
		},
	}, nil
}

func init() {
	MustRegister(reactProducer{})
}
