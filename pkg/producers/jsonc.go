package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// JSONCDomain holds rules for JSON, JSON5 and JSONC files.
const JSONCDomain = "jsonc"

const (
	pkgJSONC       = "eslint-plugin-jsonc"
	pkgJSONCParser = "jsonc-eslint-parser"
)

type jsoncProducer struct{}

func (jsoncProducer) Domain() string { return JSONCDomain }

func (jsoncProducer) Description() string {
	return "JSON, JSON5 and JSONC files"
}

func (jsoncProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	defs, err := requirePackages(ctx, in, JSONCDomain, pkgJSONC, pkgJSONCParser)
	if err != nil {
		return nil, err
	}
	plugin, parser := defs[0], defs[1]
	ns := plugin.Namespace

	adjust := types.NewRules().
		Error(ns+"/no-bigint-literals").
		Error(ns+"/no-binary-expression").
		Error(ns+"/no-binary-numeric-literals").
		Error(ns+"/no-dupe-keys").
		Error(ns+"/no-escape-sequence-in-identifier").
		Error(ns+"/no-floating-decimal").
		Error(ns+"/no-hexadecimal-numeric-literals").
		Error(ns+"/no-infinity").
		Error(ns+"/no-multi-str").
		Error(ns+"/no-nan").
		Error(ns+"/no-number-props").
		Error(ns+"/no-numeric-separators").
		Error(ns+"/no-octal").
		Error(ns+"/no-octal-escape").
		Error(ns+"/no-octal-numeric-literals").
		Error(ns+"/no-parenthesized").
		Error(ns+"/no-plus-sign").
		Error(ns+"/no-regexp-literals").
		Error(ns+"/no-sparse-arrays").
		Error(ns+"/no-template-literals").
		Error(ns+"/no-undefined-value").
		Error(ns+"/no-unicode-codepoint-escapes").
		Error(ns+"/no-useless-escape").
		Error(ns+"/space-unary-ops").
		Error(ns+"/valid-json-number").
		Error(ns+"/vue-custom-block/no-parsing-error")

	if s := in.Flags.Stylistic; s != nil {
		adjust.Error(ns+"/array-bracket-spacing", "never").
			Error(ns+"/comma-dangle", "never").
			Error(ns+"/comma-style", "last").
			Error(ns+"/indent", indentValue(s)).
			Error(ns+"/key-spacing", M{"afterColon": true, "beforeColon": false}).
			Error(ns+"/object-curly-newline", M{"consistent": true, "multiline": true}).
			Error(ns+"/object-curly-spacing", "always").
			Error(ns+"/object-property-newline", M{"allowMultiplePropertiesPerLine": true}).
			Error(ns+"/quote-props").
			Error(ns+"/quotes")
	}

	return []types.Fragment{
		{
			Name:    Name(JSONCDomain, "setup"),
			Plugins: map[string]*types.PluginDefinition{ns: plugin},
		},
		{
			Name:  Name(JSONCDomain, "rules"),
			Files: in.FilesOr(globs.JSON, globs.JSON5, globs.JSONC),
			LanguageOptions: &types.LanguageOptions{
				Parser: parser,
			},
			Rules: types.MergeRules(adjust, in.Overrides()),
		},
	}, nil
}

func init() {
	MustRegister(jsoncProducer{})
}
