package leaf_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurface/pkg/leaf"
	"github.com/yaklabco/codesurface/pkg/token"
)

func TestAppendAssignsMonotonicIndices(t *testing.T) {
	t.Parallel()

	store := leaf.NewStore()
	first := store.Append([]token.Token{token.New(token.Keyword, "a")})
	second := store.Append([]token.Token{token.New(token.Keyword, "b")})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 2, store.Len())
}

func TestPreloadedSectionsKeepIndices(t *testing.T) {
	t.Parallel()

	store := leaf.NewStore(
		[]token.Token{token.New(token.Text, "zero")},
		[]token.Token{token.New(token.Text, "one")},
	)
	idx := store.Append([]token.Token{token.New(token.Text, "two")})
	assert.Equal(t, 2, idx)

	got, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "one", got[0].Value)
}

func TestGetOutOfRange(t *testing.T) {
	t.Parallel()

	store := leaf.NewStore()
	store.Append(nil)

	for _, idx := range []int{-1, 1, 100} {
		_, ok := store.Get(idx)
		assert.False(t, ok, "index %d", idx)
	}

	var nilStore *leaf.Store
	_, ok := nilStore.Get(0)
	assert.False(t, ok)
	assert.Zero(t, nilStore.Len())
}

func TestStoredSlicesAreIsolated(t *testing.T) {
	t.Parallel()

	src := []token.Token{token.New(token.Text, "orig")}
	store := leaf.NewStore()
	idx := store.Append(src)

	src[0].Value = "mutated"
	got, _ := store.Get(idx)
	assert.Equal(t, "orig", got[0].Value)

	got[0].Value = "mutated again"
	again, _ := store.Get(idx)
	assert.Equal(t, "orig", again[0].Value)
}

func TestConcurrentReaders(t *testing.T) {
	t.Parallel()

	store := leaf.NewStore([]token.Token{token.New(token.Text, "x")})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, ok := store.Get(0)
			assert.True(t, ok)
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()
}
