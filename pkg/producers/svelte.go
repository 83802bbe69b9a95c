package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// SvelteDomain holds Svelte component rules.
const SvelteDomain = "svelte"

const (
	pkgSvelte       = "eslint-plugin-svelte"
	pkgSvelteParser = "svelte-eslint-parser"
)

type svelteProducer struct{}

func (svelteProducer) Domain() string { return SvelteDomain }

func (svelteProducer) Description() string {
	return "Svelte components: parser, processor and rules"
}

func (svelteProducer) Packages() []string {
	return []string{pkgSvelte, pkgSvelteParser}
}

func (svelteProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	defs, err := requirePackages(ctx, in, SvelteDomain, pkgSvelte, pkgSvelteParser)
	if err != nil {
		return nil, err
	}
	plugin, parser := defs[0], defs[1]
	ns := plugin.Namespace

	parserOptions := M{"extraFileExtensions": []interface{}{".svelte"}}
	if in.Flags.TypeScript {
		ts, err := requireOne(ctx, in, SvelteDomain, pkgTSParser)
		if err != nil {
			return nil, err
		}
		parserOptions["parser"] = ts.ID
	}

	adjust := types.NewRules().
		Off("import-x/no-mutable-exports").
		Off("no-undef").
		Error("no-unused-vars", M{
			"args":               "none",
			"caughtErrors":       "none",
			"ignoreRestSiblings": true,
			"vars":               "all",
			"varsIgnorePattern":  `^(\$\$Props$|\$\$Events$|\$\$Slots$)`,
		}).
		Error(ns+"/comment-directive").
		Warn(ns+"/no-at-debug-tags").
		Error(ns+"/no-at-html-tags").
		Error(ns+"/no-dupe-else-if-blocks").
		Error(ns+"/no-dupe-style-properties").
		Error(ns+"/no-dupe-use-directives").
		Error(ns+"/no-dynamic-slot-name").
		Error(ns+"/no-export-load-in-svelte-module-in-kit-pages").
		Error(ns+"/no-inner-declarations").
		Error(ns+"/no-not-function-handler").
		Error(ns+"/no-object-in-text-mustaches").
		Error(ns+"/no-reactive-functions").
		Error(ns+"/no-reactive-literals").
		Error(ns+"/no-shorthand-style-property-overrides").
		Error(ns+"/no-unknown-style-directive-property").
		Error(ns+"/no-unused-svelte-ignore").
		Error(ns+"/no-useless-mustaches").
		Error(ns+"/require-store-callbacks-use-set-param").
		Error(ns+"/system").
		Error(ns+"/valid-each-key").
		Error("unused-imports/no-unused-vars", M{
			"args":              "after-used",
			"argsIgnorePattern": "^_",
			"vars":              "all",
			"varsIgnorePattern": `^(_|\$\$Props$|\$\$Events$|\$\$Slots$)`,
		})

	return []types.Fragment{
		{
			Name:    Name(SvelteDomain, "setup"),
			Plugins: map[string]*types.PluginDefinition{ns: plugin},
		},
		{
			Name:  Name(SvelteDomain, "rules"),
			Files: in.FilesOr(globs.Svelte),
			LanguageOptions: &types.LanguageOptions{
				Parser:        parser,
				ParserOptions: parserOptions,
			},
			Processor: types.MergeProcessors(processorOf(plugin, ".svelte")),
			Rules:     types.MergeRules(adjust, in.Overrides()),
		},
	}, nil
}

func init() {
	MustRegister(svelteProducer{})
}
