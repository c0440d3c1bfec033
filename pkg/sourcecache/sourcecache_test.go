package sourcecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHitsOnIdenticalContent(t *testing.T) {
	cache, err := New(DefaultSize)
	require.NoError(t, err)

	first, err := cache.Parse("a.graphql", "query Q { a }")
	require.NoError(t, err)
	second, err := cache.Parse("b.graphql", "query Q { a }")
	require.NoError(t, err)

	assert.Same(t, first, second, "identical text must hit the cache")
	assert.Equal(t, 1, cache.Len())
}

func TestCacheSkipsFailedParses(t *testing.T) {
	cache, err := New(DefaultSize)
	require.NoError(t, err)

	_, err = cache.Parse("broken.graphql", "query {{")
	require.Error(t, err)
	assert.Zero(t, cache.Len())

	_, err = cache.Parse("broken.graphql", "query {{")
	assert.Error(t, err, "failures are re-parsed, not cached")
}

func TestCacheEvictsBeyondSize(t *testing.T) {
	cache, err := New(1)
	require.NoError(t, err)

	_, err = cache.Parse("a.graphql", "query A { a }")
	require.NoError(t, err)
	_, err = cache.Parse("b.graphql", "query B { b }")
	require.NoError(t, err)

	assert.Equal(t, 1, cache.Len())
}
