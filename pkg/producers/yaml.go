package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// YAMLDomain holds rules for YAML files.
const YAMLDomain = "yaml"

const (
	pkgYAML       = "eslint-plugin-yml"
	pkgYAMLParser = "yaml-eslint-parser"
)

type yamlProducer struct{}

func (yamlProducer) Domain() string { return YAMLDomain }

func (yamlProducer) Description() string {
	return "YAML files"
}

func (yamlProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	defs, err := requirePackages(ctx, in, YAMLDomain, pkgYAML, pkgYAMLParser)
	if err != nil {
		return nil, err
	}
	plugin, parser := defs[0], defs[1]
	ns := plugin.Namespace

	adjust := types.NewRules().
		Off("@stylistic/spaced-comment").
		Error(ns+"/block-mapping").
		Error(ns+"/block-sequence").
		Error(ns+"/no-empty-key").
		Error(ns+"/no-empty-sequence-entry").
		Error(ns+"/no-irregular-whitespace").
		Error(ns+"/plain-scalar")

	if s := in.Flags.Stylistic; s != nil {
		quote := "single"
		if s.Quotes == "double" {
			quote = "double"
		}
		adjust.Error(ns+"/block-mapping-question-indicator-newline").
			Error(ns+"/block-sequence-hyphen-indicator-newline").
			Error(ns+"/flow-mapping-curly-newline").
			Error(ns+"/flow-mapping-curly-spacing").
			Error(ns+"/flow-sequence-bracket-newline").
			Error(ns+"/flow-sequence-bracket-spacing").
			Error(ns+"/indent", yamlIndent(s.IndentWidth())).
			Error(ns+"/key-spacing").
			Error(ns+"/no-tab-indent").
			Error(ns+"/quotes", M{"avoidEscape": true, "prefer": quote}).
			Error(ns+"/spaced-comment")
	}

	return []types.Fragment{
		{
			Name:    Name(YAMLDomain, "setup"),
			Plugins: map[string]*types.PluginDefinition{ns: plugin},
		},
		{
			Name:  Name(YAMLDomain, "rules"),
			Files: in.FilesOr(globs.YAML),
			LanguageOptions: &types.LanguageOptions{
				Parser: parser,
			},
			Rules: types.MergeRules(plugin.Config("standard"), adjust, in.Overrides()),
		},
	}, nil
}

// yamlIndent falls back to two spaces since YAML forbids tabs.
func yamlIndent(width int) int {
	if width <= 0 {
		return 2
	}
	return width
}

func init() {
	MustRegister(yamlProducer{})
}
