package ecs

import (
	"github.com/TheBitDrifter/table"
	"github.com/kamstrup/intmap"
)

type archetypeID uint32

// Archetype is the canonical storage for every entity whose current
// component set is exactly one Signature (§3): a row-indexed entity
// column plus one column per component id, all parallel-indexed,
// realized as a table.Table built from the archetype's own component
// list. The entity/row bookkeeping itself (Invariant A/B) is delegated
// to table.Table — it already keeps its row-parallel columns and entry
// list in lock-step across NewEntries/DeleteEntries/TransferEntries.
type Archetype struct {
	id         archetypeID
	signature  Signature
	components []Component
	table      table.Table

	// Archetype graph caching (§4.5, recommended not required): memoized
	// forward edges "archetype reached by adding/removing id" so repeated
	// transitions skip the signature-keyed lookup on the World. Keyed by
	// the small dense ComponentId, so intmap is a direct fit — the same
	// way plus3/ooftn uses it for its own per-archetype hot lookup table.
	addEdge    *intmap.Map[uint32, archetypeID]
	removeEdge *intmap.Map[uint32, archetypeID]
}

func newArchetypeTable(schema table.Schema, entryIndex table.EntryIndex, components []Component) (table.Table, error) {
	elementTypes := make([]table.ElementType, len(components))
	for i, c := range components {
		elementTypes[i] = c
	}
	return table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(entryIndex).
		WithElementTypes(elementTypes...).
		WithEvents(Config.tableEvents).
		Build()
}

// ID returns the archetype's identity within its World. IDs are assigned
// monotonically and are never reused (§3 Invariant C: a signature maps to
// at most one archetype for the life of the World).
func (a *Archetype) ID() uint32 { return uint32(a.id) }

// Signature returns the archetype's immutable identity.
func (a *Archetype) Signature() Signature { return a.signature }

// RowCount returns the number of live rows (§3: equals Table().Length()).
func (a *Archetype) RowCount() int { return a.table.Length() }

// Table exposes the underlying column storage for query evaluation and
// typed component access.
func (a *Archetype) Table() table.Table { return a.table }

// edge looks up the memoized transition reached by adding (adding == true)
// or removing component id from this archetype.
func (a *Archetype) edge(adding bool, id ComponentId) (archetypeID, bool) {
	if adding {
		return a.addEdge.Get(uint32(id))
	}
	return a.removeEdge.Get(uint32(id))
}

// setEdge memoizes the archetype reached by adding/removing id.
func (a *Archetype) setEdge(adding bool, id ComponentId, to archetypeID) {
	if adding {
		a.addEdge.Put(uint32(id), to)
		return
	}
	a.removeEdge.Put(uint32(id), to)
}
