package loader

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/probe"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Cache memoizes a Loader by package id. Concurrent loads of the same id
// share one call to the inner loader; failures are not cached, so a later
// call retries.
type Cache struct {
	inner   Loader
	entries sync.Map
	group   singleflight.Group
	loads   atomic.Int64
}

// NewCache wraps inner.
func NewCache(inner Loader) *Cache {
	return &Cache{inner: inner}
}

func (c *Cache) Load(ctx context.Context, id string) (*types.PluginDefinition, error) {
	if v, ok := c.entries.Load(id); ok {
		return v.(*types.PluginDefinition), nil
	}

	// The shared load outlives any single caller's cancellation; a cancelled
	// caller stops waiting while the others still get the result.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (interface{}, error) {
		if v, ok := c.entries.Load(id); ok {
			return v, nil
		}
		c.loads.Add(1)
		def, err := c.inner.Load(shared, id)
		if err != nil {
			return nil, err
		}
		c.entries.Store(id, def)
		logger := logging.GetLogger("loader")
		logger.Trace().Str("package", id).Msg("cached definition")
		return def, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*types.PluginDefinition), nil
	}
}

// Loads counts calls made to the inner loader.
func (c *Cache) Loads() int64 { return c.loads.Load() }

// Len counts cached definitions.
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Reset drops every cached definition.
func (c *Cache) Reset() {
	c.entries.Range(func(k, _ interface{}) bool {
		c.entries.Delete(k)
		return true
	})
}

var shared sync.Map

// ForDir returns the process-wide cache for the project rooted at dir. The
// cache serves the embedded catalog and treats optional packages as
// installed when they are present in a node_modules directory above dir.
func ForDir(dir string) *Cache {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if v, ok := shared.Load(abs); ok {
		return v.(*Cache)
	}
	c := NewCache(NewCatalog(probe.ModulesOracle{Dir: abs}))
	v, _ := shared.LoadOrStore(abs, c)
	return v.(*Cache)
}

// Shared is the process-wide cache for the working directory.
func Shared() *Cache {
	return ForDir(".")
}
