// Package loader resolves package identifiers into plugin, parser and
// processor handles. Producers receive a Loader and only call it for the
// domains that are actually enabled.
package loader

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Loader loads the definition of one package.
type Loader interface {
	Load(ctx context.Context, id string) (*types.PluginDefinition, error)
}

// Func adapts a function to Loader.
type Func func(ctx context.Context, id string) (*types.PluginDefinition, error)

func (f Func) Load(ctx context.Context, id string) (*types.PluginDefinition, error) {
	return f(ctx, id)
}

// ErrPackageNotFound is the sentinel for a package that is not installed.
// Match it with errors.Is; the concrete error carries the package id.
var ErrPackageNotFound = errors.New(errors.ErrNotFound, "package not found")

// NotFound returns the not-installed error for id.
func NotFound(id string) error {
	return errors.Newf(errors.ErrNotFound, "package %q not found", id).WithDetail("package", id)
}

// IsNotFound reports whether err means the package is not installed.
func IsNotFound(err error) bool {
	return errors.IsErrorCode(err, errors.ErrNotFound)
}

// Map serves a fixed set of definitions, keyed by ID.
func Map(defs ...*types.PluginDefinition) Loader {
	byID := make(map[string]*types.PluginDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	return Func(func(ctx context.Context, id string) (*types.PluginDefinition, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if d, ok := byID[id]; ok {
			return d, nil
		}
		return nil, NotFound(id)
	})
}

// Require loads ids concurrently for domain and returns the handles in the
// order asked. Packages reported as not found are collected and returned
// together as one MissingDependency error. Any other loader error is
// returned unchanged.
func Require(ctx context.Context, l Loader, domain string, ids ...string) ([]*types.PluginDefinition, error) {
	out := make([]*types.PluginDefinition, len(ids))
	missing := make([]bool, len(ids))

	var mu sync.Mutex
	anyMissing := false

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			def, err := l.Load(gctx, id)
			if err != nil {
				if IsNotFound(err) {
					mu.Lock()
					missing[i] = true
					anyMissing = true
					mu.Unlock()
					return nil
				}
				return err
			}
			out[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if anyMissing {
		var names []string
		for i, m := range missing {
			if m {
				names = append(names, ids[i])
			}
		}
		return nil, errors.MissingDependency(domain, names...)
	}
	return out, nil
}

// RequireOne is Require for a single package.
func RequireOne(ctx context.Context, l Loader, domain, id string) (*types.PluginDefinition, error) {
	defs, err := Require(ctx, l, domain, id)
	if err != nil {
		return nil, err
	}
	return defs[0], nil
}
