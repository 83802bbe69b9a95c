package producers

import (
	"context"
	"maps"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// AstroDomain holds Astro component rules.
const AstroDomain = "astro"

const (
	pkgAstro       = "eslint-plugin-astro"
	pkgAstroParser = "astro-eslint-parser"
)

type astroProducer struct{}

func (astroProducer) Domain() string { return AstroDomain }

func (astroProducer) Description() string {
	return "Astro components: parser, client script processor and rules"
}

func (astroProducer) Packages() []string {
	return []string{pkgAstro, pkgAstroParser}
}

func (astroProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	defs, err := requirePackages(ctx, in, AstroDomain, pkgAstro, pkgAstroParser, pkgTSParser)
	if err != nil {
		return nil, err
	}
	plugin, parser, ts := defs[0], defs[1], defs[2]
	ns := plugin.Namespace

	// Astro pages fetch data with top-level await.
	adjust := types.NewRules().
		Off("antfu/no-top-level-await").
		Error(ns+"/missing-client-only-directive-value").
		Error(ns+"/no-conflict-set-directives").
		Error(ns+"/no-deprecated-astro-canonicalurl").
		Error(ns+"/no-deprecated-astro-fetchcontent").
		Error(ns+"/no-deprecated-astro-resolve").
		Error(ns+"/no-deprecated-getentrybyslug").
		Off(ns+"/no-set-html-directive").
		Error(ns+"/no-unused-define-vars-in-style").
		Off(ns+"/semi").
		Error(ns+"/valid-compile")

	return []types.Fragment{
		{
			Name:    Name(AstroDomain, "setup"),
			Plugins: map[string]*types.PluginDefinition{ns: plugin},
		},
		{
			Name:  Name(AstroDomain, "rules"),
			Files: in.FilesOr(globs.Astro),
			LanguageOptions: &types.LanguageOptions{
				Globals: maps.Clone(plugin.Globals),
				Parser:  parser,
				ParserOptions: M{
					"extraFileExtensions": []interface{}{".astro"},
					"parser":              ts.ID,
				},
				SourceType: "module",
			},
			Processor: types.MergeProcessors(processorOf(plugin, "client-side-ts")),
			Rules:     types.MergeRules(adjust, in.Overrides()),
		},
	}, nil
}

func init() {
	MustRegister(astroProducer{})
}
