package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flatcompose/pkg/errors"
)

type testItem struct {
	ID   int
	Name string
}

func TestRegister(t *testing.T) {
	reg := New[testItem]()

	require.NoError(t, reg.Register("item1", testItem{ID: 1, Name: "one"}))
	assert.Equal(t, 1, reg.Count())

	err := reg.Register("", testItem{ID: 2})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = reg.Register("item1", testItem{ID: 3})
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestGet(t *testing.T) {
	reg := New[testItem]()
	item := testItem{ID: 1, Name: "one"}
	require.NoError(t, reg.Register("item1", item))

	got, err := reg.Get("item1")
	require.NoError(t, err)
	assert.Equal(t, item, got)

	_, err = reg.Get("missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	reg := New[testItem]()
	for i, name := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, reg.Register(name, testItem{ID: i}))
	}

	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, reg.List())
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, reg.Sorted())

	// The returned slice is a copy
	list := reg.List()
	list[0] = "mutated"
	assert.Equal(t, "charlie", reg.List()[0])
}

func TestRemove(t *testing.T) {
	reg := New[testItem]()
	for i, name := range []string{"a", "b", "c"} {
		require.NoError(t, reg.Register(name, testItem{ID: i}))
	}

	require.NoError(t, reg.Remove("b"))
	assert.False(t, reg.Has("b"))
	assert.Equal(t, []string{"a", "c"}, reg.List())

	err := reg.Remove("b")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	// Re-registering appends at the end
	require.NoError(t, reg.Register("b", testItem{}))
	assert.Equal(t, []string{"a", "c", "b"}, reg.List())
}

func TestHas(t *testing.T) {
	reg := New[testItem]()
	require.NoError(t, reg.Register("item1", testItem{ID: 1}))

	tests := []struct {
		name     string
		itemName string
		want     bool
	}{
		{"existing item", "item1", true},
		{"non-existing item", "item2", false},
		{"empty name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Has(tt.itemName))
		})
	}
}

func TestClear(t *testing.T) {
	reg := New[testItem]()
	for i := 0; i < 5; i++ {
		require.NoError(t, reg.Register(fmt.Sprintf("item%d", i), testItem{ID: i}))
	}

	reg.Clear()
	assert.Equal(t, 0, reg.Count())
	assert.Empty(t, reg.List())
}

func TestConcurrency(t *testing.T) {
	reg := New[testItem]()
	const goroutines = 10
	const perGoroutine = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				_ = reg.Register(fmt.Sprintf("g%d-%d", id, i), testItem{ID: i})
				_ = reg.Has(fmt.Sprintf("g%d-%d", id, i))
				_ = reg.List()
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, goroutines*perGoroutine, reg.Count())
	assert.Len(t, reg.List(), goroutines*perGoroutine)
}

func TestMustHelpers(t *testing.T) {
	reg := New[testItem]()
	MustRegister(reg, "x", testItem{ID: 9})
	assert.Equal(t, 9, MustGet(reg, "x").ID)

	assert.Panics(t, func() { MustRegister(reg, "x", testItem{}) })
	assert.Panics(t, func() { MustGet(reg, "missing") })
}
