package producers

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// TypescriptDomain holds the TypeScript parser and rules.
const TypescriptDomain = "typescript"

const (
	pkgTSPlugin = "@typescript-eslint/eslint-plugin"
	pkgTSParser = "@typescript-eslint/parser"
)

type typescriptOptions struct {
	// TSConfigPath enables type-aware linting against these projects
	TSConfigPath []string `mapstructure:"tsconfigPath"`

	FilesTypeAware     []string               `mapstructure:"filesTypeAware"`
	IgnoresTypeAware   []string               `mapstructure:"ignoresTypeAware"`
	OverridesTypeAware *types.Rules           `mapstructure:"overridesTypeAware"`
	ParserOptions      map[string]interface{} `mapstructure:"parserOptions"`

	// Type is "app" or "lib"; libraries must declare return types
	Type string `mapstructure:"type"`
}

type typescriptProducer struct{}

func (typescriptProducer) Domain() string { return TypescriptDomain }

func (typescriptProducer) Description() string {
	return "TypeScript parser, strict rules and optional type-aware rules"
}

func (typescriptProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	opts := typescriptOptions{
		FilesTypeAware:   []string{globs.TS, globs.TSX},
		IgnoresTypeAware: []string{"**/*.md/**", globs.AstroTS},
		Type:             "app",
	}
	if err := in.Options.Decode(&opts); err != nil {
		return nil, err
	}
	if len(opts.TSConfigPath) == 0 {
		if _, err := os.Stat(filepath.Join(in.Flags.Dir, "tsconfig.json")); err == nil {
			opts.TSConfigPath = []string{"tsconfig.json"}
		}
	}
	typeAware := len(opts.TSConfigPath) > 0

	defs, err := requirePackages(ctx, in, TypescriptDomain, pkgTSPlugin, pkgTSParser, pkgAntfu)
	if err != nil {
		return nil, err
	}
	plugin, parser, antfu := defs[0], defs[1], defs[2]
	ns := plugin.Namespace

	files := in.FilesOr(append([]string{globs.TS, globs.TSX}, componentGlobs(in.Flags.ComponentExts)...)...)

	frags := []types.Fragment{{
		Name: Name(TypescriptDomain, "setup"),
		Plugins: map[string]*types.PluginDefinition{
			antfu.Namespace: antfu,
			ns:              plugin,
		},
	}}

	parserFragment := func(part string, files, ignores []string, aware bool) types.Fragment {
		po := M{
			"extraFileExtensions": dotted(in.Flags.ComponentExts),
			"sourceType":          "module",
		}
		if aware {
			po["projectService"] = M{
				"allowDefaultProject": []interface{}{"./*.js"},
				"defaultProject":      opts.TSConfigPath[0],
			}
			po["project"] = toInterfaces(opts.TSConfigPath)
			po["tsconfigRootDir"] = in.Flags.Dir
		}
		for k, v := range opts.ParserOptions {
			po[k] = types.CloneValue(v)
		}
		return types.Fragment{
			Name:    Name(TypescriptDomain, part),
			Files:   files,
			Ignores: ignores,
			LanguageOptions: &types.LanguageOptions{
				Parser:        parser,
				ParserOptions: po,
			},
		}
	}
	// The plain parser covers every file; the type-aware one then takes over
	// the files that can be type checked.
	frags = append(frags, parserFragment("parser", files, nil, false))
	if typeAware {
		frags = append(frags, parserFragment("type-aware-parser", opts.FilesTypeAware, opts.IgnoresTypeAware, true))
	}

	adjust := types.NewRules().
		Off("no-dupe-class-members").
		Off("no-redeclare").
		Off("no-use-before-define").
		Off("no-useless-constructor").
		Error(ns+"/ban-ts-comment", M{"ts-expect-error": "allow-with-description"}).
		Error(ns+"/consistent-type-definitions", "interface").
		Error(ns+"/consistent-type-imports", M{
			"disallowTypeAnnotations": false,
			"fixStyle":                "separate-type-imports",
			"prefer":                  "type-imports",
		}).
		Error(ns+"/method-signature-style", "property").
		Error(ns + "/no-dupe-class-members").
		Off(ns + "/no-dynamic-delete").
		Error(ns+"/no-empty-object-type", M{"allowInterfaces": "always"}).
		Off(ns + "/no-explicit-any").
		Off(ns + "/no-extraneous-class").
		Error(ns + "/no-import-type-side-effects").
		Off(ns + "/no-invalid-void-type").
		Off(ns + "/no-non-null-assertion").
		Error(ns+"/no-redeclare", M{"builtinGlobals": false}).
		Error(ns + "/no-require-imports").
		Error(ns+"/no-unused-expressions", M{
			"allowShortCircuit":    true,
			"allowTaggedTemplates": true,
			"allowTernary":         true,
		}).
		Off(ns + "/no-unused-vars").
		Error(ns+"/no-use-before-define", M{"classes": false, "functions": false, "variables": true}).
		Off(ns + "/no-useless-constructor").
		Error(ns + "/no-wrapper-object-types").
		Off(ns + "/triple-slash-reference").
		Off(ns + "/unified-signatures")
	if opts.Type == "lib" {
		adjust.Error(ns+"/explicit-function-return-type", M{
			"allowExpressions":          true,
			"allowHigherOrderFunctions": true,
			"allowIIFEs":                true,
		})
	}

	frags = append(frags, types.Fragment{
		Name:  Name(TypescriptDomain, "rules"),
		Files: files,
		Rules: types.MergeRules(
			plugin.Config("eslint-recommended"),
			plugin.Config("strict"),
			plugin.Config("stylistic"),
			adjust,
			in.Overrides(),
		),
	})

	if typeAware {
		awareAdjust := types.NewRules().
			Off("dot-notation").
			Off("no-implied-eval").
			Error(ns + "/await-thenable").
			Error(ns+"/dot-notation", M{"allowKeywords": true}).
			Error(ns + "/no-floating-promises").
			Error(ns + "/no-for-in-array").
			Error(ns + "/no-implied-eval").
			Error(ns + "/no-misused-promises").
			Error(ns + "/no-unnecessary-type-assertion").
			Error(ns + "/no-unsafe-argument").
			Error(ns + "/no-unsafe-assignment").
			Error(ns + "/no-unsafe-call").
			Error(ns + "/no-unsafe-member-access").
			Error(ns + "/no-unsafe-return").
			Error(ns + "/promise-function-async").
			Error(ns + "/restrict-plus-operands").
			Error(ns + "/restrict-template-expressions").
			Error(ns+"/return-await", "in-try-catch").
			Error(ns + "/switch-exhaustiveness-check").
			Error(ns + "/unbound-method")
		frags = append(frags, types.Fragment{
			Name:    Name(TypescriptDomain, "rules-type-aware"),
			Files:   opts.FilesTypeAware,
			Ignores: opts.IgnoresTypeAware,
			Rules: types.MergeRules(
				plugin.Config("eslint-recommended"),
				plugin.Config("strict-type-checked"),
				plugin.Config("stylistic-type-checked"),
				awareAdjust,
				opts.OverridesTypeAware,
			),
		})
	}
	return frags, nil
}

func toInterfaces(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func init() {
	MustRegister(typescriptProducer{})
}
