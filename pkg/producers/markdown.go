package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// MarkdownDomain lints code blocks embedded in markdown.
const MarkdownDomain = "markdown"

const pkgMarkdown = "@eslint/markdown"

type markdownProducer struct{}

func (markdownProducer) Domain() string { return MarkdownDomain }

func (markdownProducer) Description() string {
	return "Code blocks inside markdown files"
}

func (markdownProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	def, err := requireOne(ctx, in, MarkdownDomain, pkgMarkdown)
	if err != nil {
		return nil, err
	}
	ns := def.Namespace

	code := []string{globs.MarkdownCode}
	for _, ext := range in.Flags.ComponentExts {
		code = append(code, globs.Markdown+"/**/*."+ext)
	}

	// Snippets are fragments of programs: references to undefined names
	// and unused bindings are normal there.
	disables := types.NewRules().
		Off("antfu/no-top-level-await").
		Off("no-alert").
		Off("no-console").
		Off("no-labels").
		Off("no-lone-blocks").
		Off("no-restricted-syntax").
		Off("no-undef").
		Off("no-unused-expressions").
		Off("no-unused-labels").
		Off("no-unused-vars").
		Off("n/prefer-global/process").
		Off("@stylistic/comma-dangle").
		Off("@stylistic/eol-last").
		Off("@typescript-eslint/consistent-type-imports").
		Off("@typescript-eslint/explicit-function-return-type").
		Off("@typescript-eslint/no-namespace").
		Off("@typescript-eslint/no-redeclare").
		Off("@typescript-eslint/no-require-imports").
		Off("@typescript-eslint/no-unused-expressions").
		Off("@typescript-eslint/no-unused-vars").
		Off("@typescript-eslint/no-use-before-define").
		Off("unicode-bom").
		Off("unused-imports/no-unused-imports").
		Off("unused-imports/no-unused-vars")

	return []types.Fragment{
		{
			Name:    Name(MarkdownDomain, "setup"),
			Plugins: map[string]*types.PluginDefinition{ns: def},
		},
		{
			Name:      Name(MarkdownDomain, "processor"),
			Files:     in.FilesOr(globs.Markdown),
			Ignores:   []string{"**/*.md/*.md"},
			Processor: types.MergeProcessors(processorOf(def, "markdown")),
		},
		{
			Name:  Name(MarkdownDomain, "disables"),
			Files: code,
			LanguageOptions: &types.LanguageOptions{
				ParserOptions: M{"ecmaFeatures": M{"impliedStrict": true}},
			},
			Rules: types.MergeRules(disables, in.Overrides()),
		},
	}, nil
}

func init() {
	MustRegister(markdownProducer{})
}
