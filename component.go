package ecs

import (
	"github.com/TheBitDrifter/table"
)

// ComponentId is the dense, zero-based, process-wide identifier the
// registry assigns to a component kind on first observation. It never
// changes for the life of the process (§4.1) and, per §9's resolved
// overflow policy, never exceeds maxComponentKinds-1.
type ComponentId uint32

const maxComponentKinds = 256

// Component is a data attribute attached to entities. It is also the
// table.ElementType the archetype's column storage is built from, so
// the same value doubles as the column key and the query filter token.
type Component interface {
	table.ElementType
	id() ComponentId
	valueAt(tbl table.Table, row int) any
}
