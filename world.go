package ecs

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	"github.com/kamstrup/intmap"
)

// World is the top-level coordinator (C5): the archetype graph, the entity
// directory, the event channels and the structural-mutation lock all live
// here. A World is not safe for concurrent use from multiple goroutines —
// the model is single-threaded cooperative per tick (§5), the same
// contract the teacher's storage makes.
type World struct {
	schema    table.Schema
	directory *directory

	archetypes map[Signature]*Archetype
	byID       map[archetypeID]*Archetype
	nextArchID archetypeID

	relationships map[Entity]*relationship
	channels      *channelRegistry
	queue         operationQueue

	locks mask.Mask256
}

// NewWorld creates an empty World ready to accept entities.
func NewWorld() *World {
	return &World{
		schema:        table.Factory.NewSchema(),
		directory:     newDirectory(),
		archetypes:    make(map[Signature]*Archetype),
		byID:          make(map[archetypeID]*Archetype),
		nextArchID:    1,
		relationships: make(map[Entity]*relationship),
		channels:      newChannelRegistry(),
	}
}

// Locked reports whether the World is currently inside a query walk (or any
// other lock source), per §5: structural mutation is forbidden while true,
// and must instead be queued.
func (w *World) Locked() bool {
	return !w.locks.IsEmpty()
}

func (w *World) addLock(bit uint32) {
	w.locks.Mark(bit)
}

func (w *World) removeLock(bit uint32) {
	w.locks.Unmark(bit)
	if w.locks.IsEmpty() {
		if err := w.queue.drain(w); err != nil {
			Config.logger("ecs: error draining deferred operations: %v", err)
		}
	}
}

// getOrCreateArchetype returns the archetype for sig, building a new one
// (and registering its table with the directory) the first time sig is
// seen (§4.2 "get-or-create", §3 Invariant C: at most one archetype per
// signature for the life of the World).
func (w *World) getOrCreateArchetype(sig Signature, components []Component) (*Archetype, error) {
	if arch, ok := w.archetypes[sig]; ok {
		return arch, nil
	}

	elementTypes := make([]table.ElementType, len(components))
	for i, c := range components {
		elementTypes[i] = c
	}
	w.schema.Register(elementTypes...)

	tbl, err := newArchetypeTable(w.schema, w.directory.entryIndex, components)
	if err != nil {
		return nil, fmt.Errorf("building archetype table: %w", err)
	}

	arch := &Archetype{
		id:         w.nextArchID,
		signature:  sig,
		components: components,
		table:      tbl,
		addEdge:    intmap.New[uint32, archetypeID](4),
		removeEdge: intmap.New[uint32, archetypeID](4),
	}
	w.nextArchID++
	w.archetypes[sig] = arch
	w.byID[arch.id] = arch
	w.directory.registerArchetype(arch)
	return arch, nil
}

// CreateEntity creates a single new entity carrying exactly the given
// components (§4.5 create_entity) and publishes EntitySpawned.
func (w *World) CreateEntity(components ...Component) (Entity, error) {
	if w.Locked() {
		return Entity{}, LockedWorldError{}
	}
	sig := signatureOf(components...)
	arch, err := w.getOrCreateArchetype(sig, components)
	if err != nil {
		return Entity{}, err
	}
	entries, err := arch.table.NewEntries(1)
	if err != nil {
		return Entity{}, fmt.Errorf("allocating entity row: %w", err)
	}
	entry := entries[0]
	e := Entity{id: entry.ID(), version: entry.Recycled()}
	Events[EntitySpawned](w).Publish(EntitySpawned{Entity: e})
	return e, nil
}

// EnqueueCreateEntity behaves like CreateEntity but, if the World is
// currently locked, defers creation until the last lock releases (§5).
func (w *World) EnqueueCreateEntity(components ...Component) {
	if !w.Locked() {
		if _, err := w.CreateEntity(components...); err != nil {
			Config.logger("ecs: immediate create_entity failed: %v", err)
		}
		return
	}
	w.queue.enqueue(func(w *World) error {
		_, err := w.CreateEntity(components...)
		return err
	})
}

// DestroyEntity removes e from its archetype and publishes EntityDestroyed.
// A stale or already-destroyed handle is a silent no-op (§7).
func (w *World) DestroyEntity(e Entity) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	arch, row, err := w.directory.locate(e)
	if err != nil {
		return nil
	}
	if _, err := arch.table.DeleteEntries(row); err != nil {
		return fmt.Errorf("deleting entity row: %w", err)
	}
	if rel, ok := w.relationships[e]; ok {
		if rel.onDestroy != nil {
			rel.onDestroy(e)
		}
		delete(w.relationships, e)
	}
	Events[EntityDestroyed](w).Publish(EntityDestroyed{Entity: e})
	return nil
}

// EnqueueDestroyEntity defers DestroyEntity if the World is locked.
func (w *World) EnqueueDestroyEntity(e Entity) {
	if !w.Locked() {
		if err := w.DestroyEntity(e); err != nil {
			Config.logger("ecs: immediate destroy_entity failed: %v", err)
		}
		return
	}
	w.queue.enqueue(func(w *World) error {
		return w.DestroyEntity(e)
	})
}

// transition moves row from oldArch to the archetype reached by adding (if
// adding is true) or removing component id, consulting that archetype's edge
// cache first and falling back to the signature-keyed lookup (building
// newComponents via build only on that fallback path). The resulting edge is
// memoized on oldArch either way, so a second entity making the same move
// never recomputes newComponents or re-derives the signature.
func (w *World) transition(e Entity, oldArch *Archetype, id ComponentId, adding bool, build func() (Signature, []Component)) (*Archetype, int, error) {
	var target *Archetype
	if cached, ok := oldArch.edge(adding, id); ok {
		if arch, ok := w.byID[cached]; ok {
			target = arch
		}
	}
	if target == nil {
		newSig, newComponents := build()
		arch, err := w.getOrCreateArchetype(newSig, newComponents)
		if err != nil {
			return nil, 0, err
		}
		target = arch
	}
	oldArch.setEdge(adding, id, target.id)

	_, row, err := w.directory.locate(e)
	if err != nil {
		return nil, 0, err
	}
	if err := oldArch.table.TransferEntries(target.table, row); err != nil {
		return nil, 0, fmt.Errorf("transferring entity row: %w", err)
	}
	_, newRow, err := w.directory.locate(e)
	if err != nil {
		return nil, 0, err
	}
	return target, newRow, nil
}

// AddComponent attaches component c (and its value) to e, transitioning e
// to the archetype for its new signature (§4.5 add_component). If e
// already carries c's kind, its value is overwritten in place and e stays
// in its archetype. A stale or destroyed handle is a silent no-op (§7).
func AddComponent[T any](w *World, e Entity, c AccessibleComponent[T], value T) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	arch, row, err := w.directory.locate(e)
	if err != nil {
		return nil
	}
	if arch.signature.Contains(c.id()) {
		*c.at(arch.table, row) = value
		return nil
	}

	newArch, newRow, err := w.transition(e, arch, c.id(), true, func() (Signature, []Component) {
		return arch.signature.Add(c.id()), append(append([]Component{}, arch.components...), c)
	})
	if err != nil {
		return err
	}
	*c.at(newArch.table, newRow) = value
	return nil
}

// EnqueueAddComponent defers AddComponent until the World unlocks.
func EnqueueAddComponent[T any](w *World, e Entity, c AccessibleComponent[T], value T) {
	if !w.Locked() {
		if err := AddComponent(w, e, c, value); err != nil {
			Config.logger("ecs: immediate add_component failed: %v", err)
		}
		return
	}
	w.queue.enqueue(func(w *World) error {
		return AddComponent(w, e, c, value)
	})
}

// RemoveComponent detaches component c from e, transitioning e to the
// archetype for its reduced signature (§4.5 remove_component). A no-op if
// e does not carry c's kind, or if e is a stale or destroyed handle (§7).
func RemoveComponent[T any](w *World, e Entity, c AccessibleComponent[T]) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	arch, _, err := w.directory.locate(e)
	if err != nil {
		return nil
	}
	if !arch.signature.Contains(c.id()) {
		return nil
	}

	_, _, err = w.transition(e, arch, c.id(), false, func() (Signature, []Component) {
		newComponents := make([]Component, 0, len(arch.components)-1)
		for _, existing := range arch.components {
			if existing.id() != c.id() {
				newComponents = append(newComponents, existing)
			}
		}
		return arch.signature.Remove(c.id()), newComponents
	})
	return err
}

// EnqueueRemoveComponent defers RemoveComponent until the World unlocks.
func EnqueueRemoveComponent[T any](w *World, e Entity, c AccessibleComponent[T]) {
	if !w.Locked() {
		if err := RemoveComponent(w, e, c); err != nil {
			Config.logger("ecs: immediate remove_component failed: %v", err)
		}
		return
	}
	w.queue.enqueue(func(w *World) error {
		return RemoveComponent(w, e, c)
	})
}

// GetComponent reads c's value for e. The bool is false if e is stale or
// does not currently carry c's kind.
func GetComponent[T any](w *World, e Entity, c AccessibleComponent[T]) (*T, bool) {
	arch, row, err := w.directory.locate(e)
	if err != nil || !arch.signature.Contains(c.id()) {
		return nil, false
	}
	return c.at(arch.table, row), true
}

// HasComponent reports whether e currently carries c's kind.
func HasComponent[T any](w *World, e Entity, c AccessibleComponent[T]) bool {
	arch, _, err := w.directory.locate(e)
	if err != nil {
		return false
	}
	return arch.signature.Contains(c.id())
}

// MustGetComponent panics with ComponentNotInArchetypeError if e does not
// carry c's kind; intended for system bodies that already know, from their
// query's With set, that the component is present (§4.3).
func MustGetComponent[T any](w *World, e Entity, c AccessibleComponent[T]) *T {
	v, ok := GetComponent(w, e, c)
	if !ok {
		arch, _, _ := w.directory.locate(e)
		var sig Signature
		if arch != nil {
			sig = arch.signature
		}
		panic(bark.AddTrace(ComponentNotInArchetypeError{ComponentID: c.id(), Archetype: sig}))
	}
	return v
}
