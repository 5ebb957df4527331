package ecs

import "fmt"

// NamedCache is a small, capacity-bounded registry keyed by a diagnostic
// name, used where a component kind needs to be looked up by name rather
// than by ComponentId — snapshot component codecs (§6) are the one place
// in this module that does.
type NamedCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

var _ = (*NamedCache[any])(nil)

// GetIndex returns the slot assigned to key, if any.
func (c *NamedCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

// GetItem returns a pointer to the item at index.
func (c *NamedCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

// Register stores item under key. A key registered before keeps its slot
// and has its item replaced; a new key takes the next free slot, or gets
// an error once the cache already holds maxCapacity items.
func (c *NamedCache[T]) Register(key string, item T) (int, error) {
	if idx, ok := c.itemIndices[key]; ok {
		c.items[idx] = item
		return idx, nil
	}
	if len(c.items) >= c.maxCapacity {
		return -1, fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

// Clear empties the cache back to its initial state.
func (c *NamedCache[T]) Clear() {
	c.items = nil
	c.itemIndices = make(map[string]int)
}

// FactoryNewCache creates a NamedCache bounded to cap entries.
func FactoryNewCache[T any](cap int) *NamedCache[T] {
	return &NamedCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
