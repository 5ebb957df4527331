package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamedCacheRegisterAndLookup(t *testing.T) {
	cache := FactoryNewCache[string](10)

	items := []string{"item1", "item2", "item3", "item4", "item5"}
	indices := make([]int, len(items))

	for i, item := range items {
		index, err := cache.Register(item, item)
		require.NoError(t, err)
		require.Equal(t, i, index)
		indices[i] = index
	}

	for i, item := range items {
		index, found := cache.GetIndex(item)
		require.True(t, found)
		require.Equal(t, indices[i], index)
		require.Equal(t, item, *cache.GetItem(index))
	}

	_, found := cache.GetIndex("nonexistent")
	require.False(t, found)
}

func TestNamedCacheReRegisterOverwrites(t *testing.T) {
	cache := FactoryNewCache[int](4)

	idx, err := cache.Register("a", 1)
	require.NoError(t, err)

	idx2, err := cache.Register("a", 2)
	require.NoError(t, err)
	require.Equal(t, idx, idx2)
	require.Equal(t, 2, *cache.GetItem(idx2))
}

func TestNamedCacheCapacity(t *testing.T) {
	const capacity = 3
	cache := FactoryNewCache[int](capacity)

	for i := 0; i < capacity; i++ {
		_, err := cache.Register(string(rune('a'+i)), i)
		require.NoError(t, err)
	}

	_, err := cache.Register("overflow", 100)
	require.Error(t, err)
}

func TestNamedCacheClear(t *testing.T) {
	cache := FactoryNewCache[string](10)

	items := []string{"item1", "item2", "item3"}
	for _, item := range items {
		_, err := cache.Register(item, item)
		require.NoError(t, err)
	}

	cache.Clear()

	for _, item := range items {
		_, found := cache.GetIndex(item)
		require.False(t, found)
	}

	for _, item := range items {
		_, err := cache.Register(item, item)
		require.NoError(t, err)
	}
}
