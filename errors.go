package ecs

import "fmt"

// LockedWorldError is returned when a structural mutation is attempted
// directly against a world that is currently locked by a query walk.
// The mutation is not lost: callers should use the Enqueue* variants,
// which queue the same operation for replay once the world unlocks.
type LockedWorldError struct{}

func (e LockedWorldError) Error() string { return "world is currently locked" }

// EntityNotFoundError means the handle is stale (version mismatch) or was
// never allocated. Per §7, mutators absorb this and behave as a no-op;
// readers surface it to the caller.
type EntityNotFoundError struct {
	Entity Entity
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity not found: %v", e.Entity)
}

// ComponentNotInArchetypeError is a programmer error: typed access for a
// component absent from the entity's current signature.
type ComponentNotInArchetypeError struct {
	ComponentID ComponentId
	Archetype   Signature
}

func (e ComponentNotInArchetypeError) Error() string {
	return fmt.Sprintf("component %d not in archetype signature %v", e.ComponentID, e.Archetype)
}

// ComponentRegistryFullError fires when the component id space (§9: a
// 256-kind ceiling backed by mask.Mask256) is exhausted.
type ComponentRegistryFullError struct{}

func (e ComponentRegistryFullError) Error() string {
	return fmt.Sprintf("component registry full: at most %d distinct component kinds", maxComponentKinds)
}

// EntityRelationError reports an attempt to give an entity a second parent.
type EntityRelationError struct {
	Child, Parent Entity
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("child (%v) already has parent %v", e.Child, e.Parent)
}

// UnsupportedSnapshotVersionError is returned by Restore when the blob's
// format_version is newer than this build understands.
type UnsupportedSnapshotVersionError struct {
	Version uint32
}

func (e UnsupportedSnapshotVersionError) Error() string {
	return fmt.Sprintf("unsupported snapshot format version %d (max %d)", e.Version, snapshotFormatVersion)
}

// CorruptSnapshotError wraps a decode failure encountered while restoring
// a snapshot; the partially built world is discarded, never returned.
type CorruptSnapshotError struct {
	Reason string
}

func (e CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt snapshot: %s", e.Reason)
}

// InvalidArgumentError rejects a boundary call with a nil/invalid argument,
// e.g. a nil VisualBridge.
type InvalidArgumentError struct {
	Message string
}

func (e InvalidArgumentError) Error() string { return e.Message }
