package ecs

import "github.com/TheBitDrifter/table"

// factory implements the factory pattern for ecs package values, the same
// shape the teacher exposes (FactoryNewComponent, Factory.NewQuery, ...).
type factory struct{}

// Factory is the global factory instance for creating ecs package values.
var Factory factory

// NewQuery starts a fluent With/Without query builder (§4.6).
func (f factory) NewQuery() *queryBuilder {
	return newQueryBuilder()
}

// NewWorld creates an empty World.
func (f factory) NewWorld() *World {
	return NewWorld()
}

// NewScheduler creates an empty Scheduler ready to register systems.
func (f factory) NewScheduler() *Scheduler {
	return newScheduler()
}

// FactoryNewComponent allocates (or recovers) T's process-wide ComponentId
// and returns the AccessibleComponent[T] every component value of kind T
// is built and accessed through.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	iden := table.FactoryNewElementType[T]()
	return AccessibleComponent[T]{
		ElementType: iden,
		Accessor:    table.FactoryNewAccessor[T](iden),
		cid:         idOf[T](),
	}
}

// FactoryNewCache creates a NamedCache with the specified capacity; see
// cache.go.
