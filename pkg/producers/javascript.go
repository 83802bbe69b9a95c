package producers

import (
	"context"
	"maps"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// JavascriptDomain is the core language domain, always on.
const JavascriptDomain = "javascript"

const (
	pkgESLintJS      = "@eslint/js"
	pkgGlobals       = "globals"
	pkgUnusedImports = "eslint-plugin-unused-imports"
	pkgAntfu         = "eslint-plugin-antfu"
)

type javascriptProducer struct{}

func (javascriptProducer) Domain() string { return JavascriptDomain }

func (javascriptProducer) Description() string {
	return "Core JavaScript rules, globals and parser settings"
}

func (javascriptProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	defs, err := requirePackages(ctx, in, JavascriptDomain, pkgESLintJS, pkgGlobals, pkgUnusedImports, pkgAntfu)
	if err != nil {
		return nil, err
	}
	js, globals, unused, antfu := defs[0], defs[1], defs[2], defs[3]

	setup := types.Fragment{
		Name: Name(JavascriptDomain, "setup"),
		LanguageOptions: &types.LanguageOptions{
			EcmaVersion: "latest",
			SourceType:  "module",
			Globals:     maps.Clone(globals.Globals),
			ParserOptions: M{
				"ecmaFeatures": M{"jsx": true},
				"ecmaVersion":  "latest",
				"sourceType":   "module",
			},
		},
		LinterOptions: M{"reportUnusedDisableDirectives": true},
	}

	rules := types.Fragment{
		Name: Name(JavascriptDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{
			antfu.Namespace:  antfu,
			unused.Namespace: unused,
		},
		Rules: types.MergeRules(
			js.Config("recommended"),
			javascriptAdjustments(in.Flags.IsInEditor),
			in.Overrides(),
		),
	}
	return []types.Fragment{setup, rules}, nil
}

func javascriptAdjustments(inEditor bool) *types.Rules {
	r := types.NewRules().
		Error("accessor-pairs", M{"enforceForClassMembers": true, "setWithoutGet": true}).
		Warn("antfu/no-top-level-await").
		Error("array-callback-return").
		Error("block-scoped-var").
		Error("default-case-last").
		Error("dot-notation", M{"allowKeywords": true}).
		Error("eqeqeq", "smart").
		Error("new-cap", M{"capIsNew": false, "newIsCap": true, "properties": true}).
		Error("no-alert").
		Error("no-caller").
		Error("no-console", M{"allow": []interface{}{"warn", "error"}}).
		Error("no-eval").
		Error("no-extend-native").
		Error("no-implied-eval").
		Error("no-labels", M{"allowLoop": false, "allowSwitch": false}).
		Error("no-new-func").
		Error("no-proto").
		Error("no-restricted-globals",
			M{"message": "Use `globalThis` instead.", "name": "global"},
			M{"message": "Use `globalThis` instead.", "name": "self"},
		).
		Error("no-sequences").
		Error("no-throw-literal").
		Error("no-unused-expressions", M{
			"allowShortCircuit":    true,
			"allowTaggedTemplates": true,
			"allowTernary":         true,
		}).
		Error("no-unused-vars", M{
			"args":               "none",
			"caughtErrors":       "none",
			"ignoreRestSiblings": true,
			"vars":               "all",
		}).
		Error("no-use-before-define", M{"classes": false, "functions": false, "variables": true}).
		Error("no-useless-call").
		Error("no-useless-constructor").
		Error("no-var").
		Error("object-shorthand", "always", M{"avoidQuotes": true, "ignoreConstructors": false}).
		Error("prefer-arrow-callback", M{"allowNamedFunctions": false, "allowUnboundThis": true}).
		Error("prefer-const", M{"destructuring": "all", "ignoreReadBeforeAssign": true}).
		Error("prefer-exponentiation-operator").
		Error("prefer-promise-reject-errors").
		Error("prefer-rest-params").
		Error("prefer-spread").
		Error("prefer-template").
		Error("symbol-description").
		Error("unicode-bom", "never").
		Warn("unused-imports/no-unused-vars", M{
			"args":               "after-used",
			"argsIgnorePattern":  "^_",
			"ignoreRestSiblings": true,
			"vars":               "all",
			"varsIgnorePattern":  "^_",
		}).
		Error("valid-typeof", M{"requireStringLiterals": true}).
		Error("vars-on-top").
		Error("yoda", "never")

	// Removing an import while typing is disruptive.
	if inEditor {
		r.Off("unused-imports/no-unused-imports")
	} else {
		r.Error("unused-imports/no-unused-imports")
	}
	return r
}

func init() {
	MustRegister(javascriptProducer{})
}
