package ecs

import "github.com/TheBitDrifter/table"

// Entity is a handle naming a logical object: an index into a World's
// entity directory, plus a version bumped every time that index is
// recycled (§3). Entities are cheap, copyable values; equality is
// structural over both fields.
type Entity struct {
	id      table.EntryID
	version int
}

// Valid reports whether the handle was ever allocated. The zero Entity
// is never valid.
func (e Entity) Valid() bool { return e.id != 0 }

// directory is the Entity Directory (C4): an O(1) map from Entity to its
// current (archetype, row), with id recycling and stale-handle detection
// (§4.4).
//
// It is built directly on table.EntryIndex/table.Entry rather than a
// hand-rolled slot array with an explicit free-list: table already
// performs exactly that bookkeeping per archetype (swap-remove row
// compaction on delete, a recycle counter bumped every reuse), and the
// row a table.Entry reports is always the entity's *current* row — it
// does not go stale even when some other entity's removal shifts rows
// around it. Re-deriving that independently would risk desyncing from
// the table's own compaction. The directory's remaining job is to
// recover which Archetype wrapper currently owns a live entry, since a
// table.Entry knows its table.Table but not our Archetype around it.
type directory struct {
	entryIndex  table.EntryIndex
	archetypeOf map[table.Table]*Archetype
}

func newDirectory() *directory {
	return &directory{
		entryIndex:  table.Factory.NewEntryIndex(),
		archetypeOf: make(map[table.Table]*Archetype),
	}
}

func (d *directory) registerArchetype(a *Archetype) {
	d.archetypeOf[a.table] = a
}

// locate resolves a handle to its current archetype and row. A version
// mismatch, or an id that was never allocated, returns EntityNotFoundError
// rather than stale data — the invariant every public API depends on.
func (d *directory) locate(e Entity) (*Archetype, int, error) {
	if e.id == 0 {
		return nil, 0, EntityNotFoundError{Entity: e}
	}
	entry, err := d.entryIndex.Entry(int(e.id) - 1)
	if err != nil || entry.Recycled() != e.version {
		return nil, 0, EntityNotFoundError{Entity: e}
	}
	arch, ok := d.archetypeOf[entry.Table()]
	if !ok {
		return nil, 0, EntityNotFoundError{Entity: e}
	}
	return arch, entry.Index(), nil
}
