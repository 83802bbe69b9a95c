package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// JSXDomain enables JSX parsing for jsx and tsx files.
const JSXDomain = "jsx"

type jsxProducer struct{}

func (jsxProducer) Domain() string { return JSXDomain }

func (jsxProducer) Description() string {
	return "JSX parser settings"
}

func (jsxProducer) Produce(_ context.Context, in Input) ([]types.Fragment, error) {
	return []types.Fragment{{
		Name:  Name(JSXDomain, "setup"),
		Files: in.FilesOr(globs.JSX, globs.TSX),
		LanguageOptions: &types.LanguageOptions{
			ParserOptions: M{"ecmaFeatures": M{"jsx": true}},
		},
	}}, nil
}

func init() {
	MustRegister(jsxProducer{})
}
