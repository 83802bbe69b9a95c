package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// CommentsDomain checks eslint directive comments.
const CommentsDomain = "comments"

const pkgComments = "@eslint-community/eslint-plugin-eslint-comments"

type commentsProducer struct{}

func (commentsProducer) Domain() string { return CommentsDomain }

func (commentsProducer) Description() string {
	return "Rules for eslint-disable and related directive comments"
}

func (commentsProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	def, err := requireOne(ctx, in, CommentsDomain, pkgComments)
	if err != nil {
		return nil, err
	}
	adjust := types.NewRules().
		Error("eslint-comments/no-aggregating-enable").
		Error("eslint-comments/no-duplicate-disable").
		Error("eslint-comments/no-unlimited-disable").
		Error("eslint-comments/no-unused-enable")

	return []types.Fragment{{
		Name:    Name(CommentsDomain, "rules"),
		Plugins: map[string]*types.PluginDefinition{def.Namespace: def},
		Rules:   types.MergeRules(adjust, in.Overrides()),
	}}, nil
}

func init() {
	MustRegister(commentsProducer{})
}
