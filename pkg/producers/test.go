package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// TestDomain holds rules for test files.
const TestDomain = "test"

const (
	pkgVitest      = "@vitest/eslint-plugin"
	pkgNoOnlyTests = "eslint-plugin-no-only-tests"
)

type testProducer struct{}

func (testProducer) Domain() string { return TestDomain }

func (testProducer) Description() string {
	return "Rules for test and spec files"
}

func (testProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	defs, err := requirePackages(ctx, in, TestDomain, pkgVitest, pkgNoOnlyTests)
	if err != nil {
		return nil, err
	}
	vitest, noOnly := defs[0], defs[1]
	ns := vitest.Namespace

	adjust := types.NewRules().
		Error(ns+"/consistent-test-it", M{"fn": "it", "withinDescribe": "it"}).
		Error(ns+"/no-identical-title").
		Error(ns+"/no-import-node-test").
		Error(ns+"/prefer-hooks-in-order").
		Error(ns+"/prefer-lowercase-title").
		Off("antfu/no-top-level-await").
		Off("no-unused-expressions").
		Off("n/prefer-global/process").
		Off("@typescript-eslint/explicit-function-return-type")
	// A focused test left in while editing is expected.
	if in.Flags.IsInEditor {
		adjust.Warn("no-only-tests/no-only-tests")
	} else {
		adjust.Error("no-only-tests/no-only-tests")
	}

	return []types.Fragment{
		{
			Name: Name(TestDomain, "setup"),
			Plugins: map[string]*types.PluginDefinition{
				noOnly.Namespace: noOnly,
				ns:               vitest,
			},
		},
		{
			Name:  Name(TestDomain, "rules"),
			Files: in.FilesOr(globs.Tests...),
			Rules: types.MergeRules(adjust, in.Overrides()),
		},
	}, nil
}

func init() {
	MustRegister(testProducer{})
}
