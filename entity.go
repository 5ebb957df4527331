package ecs

import (
	"fmt"
	"sort"
	"strings"
)

// EntityDestroyCallback is invoked when an entity with a registered
// callback is destroyed.
type EntityDestroyCallback func(Entity)

// relationship holds the supplementary parent/child bookkeeping the
// teacher's entity.go carries (SetParent/Parent, a destroy callback).
// spec.md doesn't call for it, but it's a fully worked-out, low-risk
// capability worth keeping (SPEC_FULL §4): a parent handle is only
// honored while it is still live at its originally recorded version, so
// a destroyed-and-recycled parent slot is never mistaken for the
// original parent.
type relationship struct {
	parent    Entity
	onDestroy EntityDestroyCallback
}

// SetParent establishes a parent-child relationship. An entity may only
// be given a parent once; a second call returns EntityRelationError.
func (w *World) SetParent(child, parent Entity, callback EntityDestroyCallback) error {
	rel := w.relationshipFor(child)
	if rel.parent.Valid() {
		return EntityRelationError{Child: child, Parent: rel.parent}
	}
	rel.parent = parent
	if callback != nil {
		if err := w.SetDestroyCallback(parent, callback); err != nil {
			return err
		}
	}
	return nil
}

// Parent returns child's parent, or the zero Entity if it has none, or if
// its parent has since been destroyed and the slot recycled — re-checked
// against the directory on every call rather than cached, since the
// parent handle's liveness can change at any time after SetParent.
func (w *World) Parent(child Entity) Entity {
	rel, ok := w.relationships[child]
	if !ok || !rel.parent.Valid() {
		return Entity{}
	}
	if _, _, err := w.directory.locate(rel.parent); err != nil {
		return Entity{}
	}
	return rel.parent
}

// SetDestroyCallback registers a callback invoked when e is destroyed.
func (w *World) SetDestroyCallback(e Entity, callback EntityDestroyCallback) error {
	rel := w.relationshipFor(e)
	rel.onDestroy = callback
	return nil
}

func (w *World) relationshipFor(e Entity) *relationship {
	rel, ok := w.relationships[e]
	if !ok {
		rel = &relationship{}
		w.relationships[e] = rel
	}
	return rel
}

// ComponentsAsString returns a sorted, bracketed diagnostic listing of the
// component kinds currently attached to e, e.g. "[Position, Velocity]".
func (w *World) ComponentsAsString(e Entity) string {
	arch, _, err := w.directory.locate(e)
	if err != nil || len(arch.components) == 0 {
		return "[]"
	}
	names := make([]string, 0, len(arch.components))
	for _, c := range arch.components {
		name := globalRegistry.nameOf(c.id())
		name = strings.TrimPrefix(name, "*")
		parts := strings.Split(name, ".")
		names = append(names, parts[len(parts)-1])
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}

// String gives Entity a readable %v representation for logs and errors.
func (e Entity) String() string {
	return fmt.Sprintf("Entity{id:%d, version:%d}", e.id, e.version)
}
