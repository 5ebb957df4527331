package ecs

import (
	"reflect"
	"sync"

	"github.com/TheBitDrifter/bark"
	"github.com/kamstrup/intmap"
)

// componentInfo is the metadata the registry records the first time a
// component kind is observed: its id, its Go type and a diagnostic name.
// Size, alignment and drop behaviour are not recorded here; the column
// storage layout is owned by table.Table, which already lays out each
// component's Go type at its natural alignment.
type componentInfo struct {
	id   ComponentId
	typ  reflect.Type
	name string
}

// componentRegistry is the process-wide Component Type Registry (C1). It
// is deliberately not a field on World: ComponentId must compare equal
// across every World in the process, the way two Worlds built from the
// same FactoryNewComponent[T]() value must agree on what "Position" means.
type componentRegistry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]ComponentId
	info   *intmap.Map[uint32, componentInfo]
	next   ComponentId
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{
		byType: make(map[reflect.Type]ComponentId),
		info:   intmap.New[uint32, componentInfo](64),
	}
}

var globalRegistry = newComponentRegistry()

// idOf returns T's process-wide ComponentId, allocating one on first call
// and returning the cached id on every subsequent call. Monotonic,
// idempotent, never reused — the contract from §4.1.
func idOf[T any]() ComponentId {
	var zero T
	typ := reflect.TypeOf(zero)
	return globalRegistry.idFor(typ)
}

func (r *componentRegistry) idFor(typ reflect.Type) ComponentId {
	r.mu.RLock()
	id, ok := r.byType[typ]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byType[typ]; ok {
		return id
	}
	if int(r.next) >= maxComponentKinds {
		panic(bark.AddTrace(ComponentRegistryFullError{}))
	}

	id = r.next
	r.next++
	r.byType[typ] = id
	r.info.Put(uint32(id), componentInfo{id: id, typ: typ, name: typ.Name()})
	return id
}

// nameOf returns the diagnostic name recorded for id, or "" if id was
// never allocated (only reachable through programmer error).
func (r *componentRegistry) nameOf(id ComponentId) string {
	info, ok := r.info.Get(uint32(id))
	if !ok {
		return ""
	}
	return info.name
}

func (r *componentRegistry) typeOf(id ComponentId) (reflect.Type, bool) {
	info, ok := r.info.Get(uint32(id))
	if !ok {
		return nil, false
	}
	return info.typ, true
}
