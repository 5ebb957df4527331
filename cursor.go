package ecs

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// queryLockBit is the World.locks bit queries hold while a walk is in
// progress (§5): distinct from any bit a future lock source might add,
// the same way the teacher's storage reserves bits per lock source rather
// than a single bool.
const queryLockBit = 0

// Chunk is one archetype's worth of rows matching a query (§4.6): a
// contiguous, row-parallel slice a system can iterate without re-testing
// the query per entity.
type Chunk struct {
	archetype *Archetype
	count     int
}

// Count returns the number of rows in the chunk, snapshotted when the
// chunk was produced — stable for the lifetime of the query walk, since
// structural mutation is deferred until the walk completes (§5).
func (c Chunk) Count() int { return c.count }

// Entity returns the handle for the row-th entity in the chunk.
func (c Chunk) Entity(row int) (Entity, error) {
	entry, err := c.archetype.table.Entry(row)
	if err != nil {
		return Entity{}, err
	}
	return Entity{id: entry.ID(), version: entry.Recycled()}, nil
}

// Query evaluates q against every archetype currently in w and yields one
// Chunk per match, in archetype-creation order. The World is locked for
// the duration of the walk: AddComponent/RemoveComponent/CreateEntity/
// DestroyEntity called from within the loop body return LockedWorldError
// and must go through the Enqueue* variants instead (§5).
func (w *World) Query(q Query) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		// A walk nested inside another leaves the lock to the outermost
		// walk, so the inner walk's end does not unlock the World early.
		var held mask.Mask256
		held.Mark(queryLockBit)
		if !w.locks.ContainsAll(held) {
			w.addLock(queryLockBit)
			defer w.removeLock(queryLockBit)
		}

		for id := archetypeID(1); id < w.nextArchID; id++ {
			arch := w.byID[id]
			if !q.matches(arch.signature) {
				continue
			}
			if arch.RowCount() == 0 {
				continue
			}
			chunk := Chunk{archetype: arch, count: arch.RowCount()}
			if !yield(chunk) {
				return
			}
		}
	}
}

// TotalMatched returns the number of entities across every archetype
// matching q, without yielding a walk (diagnostic / test helper).
func (w *World) TotalMatched(q Query) int {
	total := 0
	for _, arch := range w.archetypes {
		if q.matches(arch.signature) {
			total += arch.RowCount()
		}
	}
	return total
}
