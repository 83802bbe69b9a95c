package compose

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/rename"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Compose runs a plan and returns the finished list.
func Compose(ctx context.Context, plan *Plan, user ...[]types.Fragment) ([]types.Fragment, error) {
	return New(plan, user...).Build(ctx)
}

// entry is a fragment and where it came from.
type entry struct {
	frag   types.Fragment
	source string
}

type editKind int

const (
	editAppend editKind = iota
	editPrepend
	editInsertAfter
	editInsertBefore
	editOverride
	editRemove
)

type edit struct {
	kind   editKind
	target string
	frags  []types.Fragment
	fn     func(*types.Fragment)
}

// Composer composes a plan with edits applied to the generated list. Edits
// are replayed in the order they were recorded, after user fragments and
// before renaming.
type Composer struct {
	plan  *Plan
	user  [][]types.Fragment
	edits []edit
	table *rename.Table
}

// New starts a composer. user fragment lists are appended after the
// generated ones, in order.
func New(plan *Plan, user ...[]types.Fragment) *Composer {
	return &Composer{plan: plan, user: user}
}

// Append adds fragments at the end of the list, before the disables.
func (c *Composer) Append(frags ...types.Fragment) *Composer {
	c.edits = append(c.edits, edit{kind: editAppend, frags: frags})
	return c
}

// Prepend adds fragments at the start of the list.
func (c *Composer) Prepend(frags ...types.Fragment) *Composer {
	c.edits = append(c.edits, edit{kind: editPrepend, frags: frags})
	return c
}

// InsertAfter adds fragments right after the named one.
func (c *Composer) InsertAfter(name string, frags ...types.Fragment) *Composer {
	c.edits = append(c.edits, edit{kind: editInsertAfter, target: name, frags: frags})
	return c
}

// InsertBefore adds fragments right before the named one.
func (c *Composer) InsertBefore(name string, frags ...types.Fragment) *Composer {
	c.edits = append(c.edits, edit{kind: editInsertBefore, target: name, frags: frags})
	return c
}

// Override edits the named fragment in place.
func (c *Composer) Override(name string, fn func(*types.Fragment)) *Composer {
	c.edits = append(c.edits, edit{kind: editOverride, target: name, fn: fn})
	return c
}

// Remove drops the named fragment.
func (c *Composer) Remove(name string) *Composer {
	c.edits = append(c.edits, edit{kind: editRemove, target: name})
	return c
}

// RenamePlugins replaces the plan's rename table and turns renaming on.
func (c *Composer) RenamePlugins(table *rename.Table) *Composer {
	c.table = table
	return c
}

// Build runs the producers and assembles the final list.
func (c *Composer) Build(ctx context.Context) ([]types.Fragment, error) {
	logger := logging.GetLogger("compose")
	done := logging.LogOperationStart(logger, "compose")
	defer done()

	if c.plan == nil {
		return nil, errors.New(errors.ErrInvalidInput, "compose: nil plan")
	}

	entries, err := c.generate(ctx)
	if err != nil {
		return nil, err
	}

	if c.plan.HasFused {
		frag, err := c.plan.Fused.Build(ctx, c.plan.Loader, "options")
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{frag: frag, source: "top-level options"})
	}
	for i, list := range c.user {
		for j, f := range list {
			entries = append(entries, entry{frag: f.Clone(), source: fmt.Sprintf("user fragment %d.%d", i, j)})
		}
	}

	for i, e := range c.edits {
		entries, err = apply(entries, e, i)
		if err != nil {
			return nil, err
		}
	}

	frags := make([]types.Fragment, len(entries))
	sources := make([]string, len(entries))
	for i, e := range entries {
		frags[i] = e.frag
		sources[i] = e.source
	}

	table := c.plan.Rename
	renaming := c.plan.AutoRename
	if c.table != nil {
		table, renaming = c.table, true
	}
	if !renaming {
		table = nil
	}
	if table != nil {
		frags = rename.Fragments(frags, table)
	}

	frags = append(frags, disablesFragment(c.plan.Disables, c.plan.DisableFiles, table))
	sources = append(sources, "finalizer")

	if err := validate(frags, sources); err != nil {
		return nil, err
	}
	warnUnregistered(frags)

	logger.Info().Int("fragments", len(frags)).Int("domains", len(c.plan.Steps)).Msg("Composed")
	return frags, nil
}

// generate runs every step concurrently and linearizes by plan position.
func (c *Composer) generate(ctx context.Context) ([]entry, error) {
	logger := logging.GetLogger("compose")
	results := make([][]types.Fragment, len(c.plan.Steps))

	g, gctx := errgroup.WithContext(ctx)
	for i, step := range c.plan.Steps {
		g.Go(func() error {
			start := time.Now()
			frags, err := step.Producer.Produce(gctx, step.Input)
			if err != nil {
				logger.Debug().Err(err).Str("domain", step.Domain).Msg("Producer failed")
				return err
			}
			results[i] = frags
			logger.Debug().
				Str("domain", step.Domain).
				Int("fragments", len(frags)).
				Dur("duration", time.Since(start)).
				Msg("Producer finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []entry
	for i, frags := range results {
		source := "domain " + c.plan.Steps[i].Domain
		for _, f := range frags {
			entries = append(entries, entry{frag: f, source: source})
		}
	}
	return entries, nil
}

func apply(entries []entry, e edit, n int) ([]entry, error) {
	source := fmt.Sprintf("composer edit %d", n)
	added := make([]entry, len(e.frags))
	for i, f := range e.frags {
		added[i] = entry{frag: f.Clone(), source: source}
	}

	switch e.kind {
	case editAppend:
		return append(entries, added...), nil
	case editPrepend:
		return append(added, entries...), nil
	}

	idx := indexByName(entries, e.target)
	if idx < 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no fragment named %q", e.target).
			WithDetail("name", e.target)
	}

	switch e.kind {
	case editInsertAfter:
		idx++
		fallthrough
	case editInsertBefore:
		out := make([]entry, 0, len(entries)+len(added))
		out = append(out, entries[:idx]...)
		out = append(out, added...)
		return append(out, entries[idx:]...), nil
	case editOverride:
		if e.fn != nil {
			e.fn(&entries[idx].frag)
		}
		return entries, nil
	case editRemove:
		return append(entries[:idx:idx], entries[idx+1:]...), nil
	}
	return entries, nil
}

func indexByName(entries []entry, name string) int {
	for i, e := range entries {
		if e.frag.Name == name {
			return i
		}
	}
	return -1
}
