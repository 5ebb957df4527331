package ecs

import "github.com/TheBitDrifter/table"

// AccessibleComponent extends a component's table identity with typed,
// table-based accessibility (§4.1, §4.3). It is what FactoryNewComponent
// returns: a value that is simultaneously the component's table.ElementType
// identity (so it can be passed straight into a query or a table builder)
// and a table.Accessor[T] capable of reading/writing a T out of any table
// that happens to have this component's column.
type AccessibleComponent[T any] struct {
	table.ElementType
	table.Accessor[T]
	cid ComponentId
}

func (c AccessibleComponent[T]) id() ComponentId { return c.cid }

// at is the shared implementation behind every typed read/write: get the
// row out of whichever table currently holds it.
func (c AccessibleComponent[T]) at(tbl table.Table, row int) *T {
	return c.Accessor.Get(row, tbl)
}

// valueAt satisfies Component's opaque accessor, used by snapshot encoding
// where the concrete T is only known to the registered codec, not to the
// snapshot walker.
func (c AccessibleComponent[T]) valueAt(tbl table.Table, row int) any {
	return *c.at(tbl, row)
}

// Get reads the component value for the entity at the given chunk row.
// Callers within a chunk loop already know the component is present
// (it is part of the query's required set); use CheckChunk first where
// that is not known.
func (c AccessibleComponent[T]) Get(chunk Chunk, row int) *T {
	return c.Accessor.Get(row, chunk.archetype.table)
}

// Column returns a typed view over the whole column for bulk iteration
// (§4.3 column_span), required by queries that want to stream the
// archetype's rows without re-resolving the accessor per row.
func (c AccessibleComponent[T]) Column(chunk Chunk) ColumnView[T] {
	return ColumnView[T]{accessor: c.Accessor, tbl: chunk.archetype.table, n: chunk.Count()}
}

// ColumnView is a dense, row-parallel view of one component's column
// within one archetype, as produced by Archetype's column_span (§4.3).
type ColumnView[T any] struct {
	accessor table.Accessor[T]
	tbl      table.Table
	n        int
}

// Len returns the number of rows in the view.
func (v ColumnView[T]) Len() int { return v.n }

// At returns a pointer to the component value at row i.
func (v ColumnView[T]) At(i int) *T { return v.accessor.Get(i, v.tbl) }

// CheckChunk reports whether the component exists in the archetype the
// chunk covers; it is always true for components in a query's With set,
// so this is mainly useful for an optional/Without-adjacent read.
func (c AccessibleComponent[T]) CheckChunk(chunk Chunk) bool {
	return c.Accessor.Check(chunk.archetype.table)
}
