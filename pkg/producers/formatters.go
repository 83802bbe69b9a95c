package producers

import (
	"context"
	"strings"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// FormattersDomain hands non-script files to external formatters through
// lint rules.
const FormattersDomain = "formatters"

const (
	pkgFormat    = "eslint-plugin-format"
	pkgPrettierX = "@prettier/plugin-xml"
)

const (
	formatterPrettier = "prettier"
	formatterDprint   = "dprint"
)

type formattersOptions struct {
	CSS      interface{} `mapstructure:"css"`
	HTML     interface{} `mapstructure:"html"`
	Markdown interface{} `mapstructure:"markdown"`
	GraphQL  interface{} `mapstructure:"graphql"`
	XML      interface{} `mapstructure:"xml"`
	SVG      interface{} `mapstructure:"svg"`

	PrettierOptions map[string]interface{} `mapstructure:"prettierOptions"`
	DprintOptions   map[string]interface{} `mapstructure:"dprintOptions"`
}

// formatterLanguage is one file kind a formatter can own.
type formatterLanguage struct {
	part   string
	files  []string
	parser string
	// dprint is the dprint language name, empty when only prettier works
	dprint string
	xml    bool
}

var formatterLanguages = []formatterLanguage{
	{part: "css", files: []string{globs.CSS, globs.PostCSS}, parser: "css"},
	{part: "less", files: []string{globs.Less}, parser: "less"},
	{part: "scss", files: []string{globs.SCSS}, parser: "scss"},
	{part: "html", files: []string{globs.HTML}, parser: "html"},
	{part: "xml", files: []string{globs.XML}, parser: "xml", xml: true},
	{part: "svg", files: []string{globs.SVG}, parser: "xml", xml: true},
	{part: "markdown", files: []string{globs.Markdown}, parser: "markdown", dprint: "markdown"},
	{part: "graphql", files: []string{globs.GraphQL}, parser: "graphql"},
}

type formattersProducer struct{}

func (formattersProducer) Domain() string { return FormattersDomain }

func (formattersProducer) Description() string {
	return "Prettier or dprint formatting for css, html, markdown, graphql, xml and svg"
}

func (formattersProducer) Packages() []string { return []string{pkgFormat} }

func (formattersProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	var opts formattersOptions
	if err := in.Options.Decode(&opts); err != nil {
		return nil, err
	}
	// Enabling the domain without options formats the common languages.
	if len(in.Options.Extra) == 0 {
		opts.CSS, opts.HTML, opts.Markdown, opts.GraphQL = true, true, true, true
	}

	choices := map[string]interface{}{
		"css":      opts.CSS,
		"less":     opts.CSS,
		"scss":     opts.CSS,
		"html":     opts.HTML,
		"markdown": opts.Markdown,
		"graphql":  opts.GraphQL,
		"xml":      opts.XML,
		"svg":      opts.SVG,
	}

	ids := []string{pkgFormat}
	if enabledChoice(opts.XML) || enabledChoice(opts.SVG) {
		ids = append(ids, pkgPrettierX)
	}
	defs, err := requirePackages(ctx, in, FormattersDomain, ids...)
	if err != nil {
		return nil, err
	}
	format := defs[0]
	ns := format.Namespace
	plain := parserPlain(format)

	prettier := prettierOptions(in.Flags.Stylistic, opts.PrettierOptions)
	frags := []types.Fragment{{
		Name:    Name(FormattersDomain, "setup"),
		Plugins: map[string]*types.PluginDefinition{ns: format},
	}}
	for _, lang := range formatterLanguages {
		tool, err := formatterChoice(lang.part, choices[lang.part], lang.dprint != "")
		if err != nil {
			return nil, err
		}
		if tool == "" {
			continue
		}

		var rules *types.Rules
		if tool == formatterDprint {
			rules = types.NewRules().Error(ns+"/dprint", M{
				"language":        lang.dprint,
				"languageOptions": types.CloneMap(opts.DprintOptions),
			})
		} else {
			params := types.CloneMap(prettier)
			params["parser"] = lang.parser
			if lang.xml {
				params["plugins"] = []interface{}{pkgPrettierX}
				params["xmlQuoteAttributes"] = "double"
				params["xmlWhitespaceSensitivity"] = "ignore"
			}
			rules = types.NewRules().Error(ns+"/prettier", params)
		}

		frags = append(frags, types.Fragment{
			Name:  Name(FormattersDomain, lang.part),
			Files: lang.files,
			LanguageOptions: &types.LanguageOptions{
				Parser: plain,
			},
			Rules: types.MergeRules(rules, in.Overrides()),
		})
	}
	return frags, nil
}

// parserPlain is the pass-through parser shipped inside the format plugin.
func parserPlain(format *types.PluginDefinition) *types.PluginDefinition {
	return &types.PluginDefinition{
		ID:      format.ID + "/parser-plain",
		Kind:    types.KindParser,
		Bundled: format.Bundled,
	}
}

// prettierOptions derives prettier settings from the style preferences;
// explicit options win.
func prettierOptions(s *options.Stylistic, explicit map[string]interface{}) M {
	style := options.StylisticDefaults
	if s != nil {
		style = *s
	}
	width := style.IndentWidth()
	if width == 0 {
		width = 2
	}
	out := M{
		"endOfLine":     "auto",
		"printWidth":    120,
		"semi":          style.Semi,
		"singleQuote":   style.Quotes == "single",
		"tabWidth":      width,
		"trailingComma": "all",
		"useTabs":       style.UseTabs(),
	}
	for k, v := range explicit {
		out[k] = types.CloneValue(v)
	}
	return out
}

func enabledChoice(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && !strings.EqualFold(t, "false")
	}
	return false
}

// formatterChoice resolves a language option to "", "prettier" or
// "dprint". true means prettier.
func formatterChoice(lang string, v interface{}, dprintOK bool) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case bool:
		if t {
			return formatterPrettier, nil
		}
		return "", nil
	case string:
		switch strings.ToLower(t) {
		case "", "false":
			return "", nil
		case "true", formatterPrettier:
			return formatterPrettier, nil
		case formatterDprint:
			if dprintOK {
				return formatterDprint, nil
			}
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "formatters.%s: unsupported value %v", lang, v).
		WithDetail("domain", FormattersDomain)
}

func init() {
	MustRegister(formattersProducer{})
}
