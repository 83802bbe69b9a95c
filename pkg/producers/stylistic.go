package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// StylisticDomain holds formatting rules derived from the stylistic
// preferences.
const StylisticDomain = "stylistic"

const pkgStylistic = "@stylistic/eslint-plugin"

type stylisticOptions struct {
	// LessOpinionated drops the layout rules that go beyond formatting
	LessOpinionated bool `mapstructure:"lessOpinionated"`
}

type stylisticProducer struct{}

func (stylisticProducer) Domain() string { return StylisticDomain }

func (stylisticProducer) Description() string {
	return "Code style rules built from indent, quotes, semi and jsx preferences"
}

func (stylisticProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	var opts stylisticOptions
	if err := in.Options.Decode(&opts); err != nil {
		return nil, err
	}
	style := in.Flags.Stylistic
	if style == nil {
		s := options.StylisticDefaults
		style = &s
	}

	defs, err := requirePackages(ctx, in, StylisticDomain, pkgStylistic, pkgAntfu)
	if err != nil {
		return nil, err
	}
	plugin, antfu := defs[0], defs[1]

	rules := StylisticRules(plugin.Namespace, style)
	rules.Error("antfu/consistent-list-newline").
		Error("curly", "multi-line", "consistent")
	if !opts.LessOpinionated {
		rules.Error("antfu/consistent-chaining").
			Error("antfu/if-newline").
			Error("antfu/top-level-function")
	}

	return []types.Fragment{{
		Name: Name(StylisticDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{
			antfu.Namespace:  antfu,
			plugin.Namespace: plugin,
		},
		Rules: types.MergeRules(rules, in.Overrides()),
	}}, nil
}

// StylisticRules expands style preferences into rules under ns.
func StylisticRules(ns string, s *options.Stylistic) *types.Rules {
	indent := indentValue(s)
	semi := "never"
	if s.Semi {
		semi = "always"
	}
	r := types.NewRules().
		Error(ns+"/array-bracket-spacing", "never").
		Error(ns+"/arrow-parens", "as-needed", M{"requireForBlockBody": true}).
		Error(ns+"/arrow-spacing", M{"after": true, "before": true}).
		Error(ns+"/block-spacing", "always").
		Error(ns+"/brace-style", "1tbs", M{"allowSingleLine": true}).
		Error(ns+"/comma-dangle", "always-multiline").
		Error(ns+"/comma-spacing", M{"after": true, "before": false}).
		Error(ns+"/comma-style", "last").
		Error(ns+"/dot-location", "property").
		Error(ns + "/eol-last").
		Error(ns+"/indent", indent, M{
			"ignoreComments":           false,
			"offsetTernaryExpressions": true,
			"SwitchCase":               1,
		}).
		Error(ns+"/key-spacing", M{"afterColon": true, "beforeColon": false}).
		Error(ns+"/keyword-spacing", M{"after": true, "before": true}).
		Error(ns+"/max-statements-per-line", M{"max": 1}).
		Error(ns+"/member-delimiter-style", M{
			"multiline":          M{"delimiter": delimiter(s.Semi), "requireLast": s.Semi},
			"multilineDetection": "brackets",
			"singleline":         M{"delimiter": delimiter(s.Semi), "requireLast": s.Semi},
		}).
		Error(ns + "/no-mixed-spaces-and-tabs").
		Error(ns + "/no-multi-spaces").
		Error(ns+"/no-multiple-empty-lines", M{"max": 1, "maxBOF": 0, "maxEOF": 0}).
		Error(ns + "/no-trailing-spaces").
		Error(ns+"/object-curly-spacing", "always").
		Error(ns+"/operator-linebreak", "before").
		Error(ns+"/padded-blocks", M{"blocks": "never", "classes": "never", "switches": "never"}).
		Error(ns+"/quote-props", "consistent-as-needed").
		Error(ns+"/quotes", s.Quotes, M{"allowTemplateLiterals": true, "avoidEscape": false}).
		Error(ns+"/semi", semi).
		Error(ns+"/semi-spacing", M{"after": true, "before": false}).
		Error(ns+"/space-before-blocks", "always").
		Error(ns+"/space-before-function-paren", M{
			"anonymous":  "always",
			"asyncArrow": "always",
			"named":      "never",
		}).
		Error(ns+"/space-in-parens", "never").
		Error(ns + "/space-infix-ops").
		Error(ns+"/spaced-comment", "always").
		Error(ns + "/template-curly-spacing").
		Error(ns + "/type-annotation-spacing")

	if s.UseTabs() {
		r.Error(ns+"/no-tabs", M{"allowIndentationTabs": true})
	} else {
		r.Error(ns + "/no-tabs")
	}

	if s.JSX {
		r.Error(ns + "/jsx-closing-bracket-location").
			Error(ns + "/jsx-closing-tag-location").
			Error(ns+"/jsx-curly-brace-presence", M{"propElementValues": "always"}).
			Error(ns + "/jsx-curly-newline").
			Error(ns+"/jsx-curly-spacing", "never").
			Error(ns + "/jsx-equals-spacing").
			Error(ns + "/jsx-first-prop-new-line").
			Error(ns+"/jsx-function-call-newline", "multiline").
			Error(ns+"/jsx-indent-props", indent).
			Error(ns+"/jsx-max-props-per-line", M{"maximum": 1, "when": "multiline"}).
			Error(ns+"/jsx-one-expression-per-line", M{"allow": "single-child"}).
			Error(ns + "/jsx-quotes").
			Error(ns+"/jsx-tag-spacing", M{
				"afterOpening":      "never",
				"beforeClosing":     "never",
				"beforeSelfClosing": "always",
				"closingSlash":      "never",
			}).
			Error(ns+"/jsx-wrap-multilines", M{
				"arrow":       "parens-new-line",
				"assignment":  "parens-new-line",
				"declaration": "parens-new-line",
				"return":      "parens-new-line",
			})
	}
	return r
}

func delimiter(semi bool) string {
	if semi {
		return "semi"
	}
	return "none"
}

func init() {
	MustRegister(stylisticProducer{})
}
