/*
Package ecs provides an archetype-based Entity-Component-System core for
games and simulations.

Entities with an identical set of components — their signature — are
stored together in one archetype as structure-of-arrays columns, so a
system walking "every entity with Position and Velocity" streams dense
Position and Velocity columns instead of chasing pointers through a
heterogeneous entity bag.

Core Concepts:

  - Entity: a {id, version} handle naming a logical object.
  - Component: a plain data record identified by a process-wide ComponentId.
  - Signature: the set of ComponentIds currently attached to an entity.
  - Archetype: storage shared by every entity with one identical signature.
  - Query: a With/Without filter that selects matching archetypes.
  - Chunk: one archetype's worth of rows handed to a system during a query walk.
  - Phase/Scheduler: systems run in (Phase, Order) order, once per tick.

Basic Usage:

	world := ecs.NewWorld()

	position := ecs.FactoryNewComponent[Position]()
	velocity := ecs.FactoryNewComponent[Velocity]()

	e, _ := world.CreateEntity()
	ecs.AddComponent(world, e, position, Position{X: 1, Y: 2})
	ecs.AddComponent(world, e, velocity, Velocity{X: 10})

	q := ecs.Factory.NewQuery().With(position, velocity).Compile()
	for chunk := range world.Query(q) {
		pos := position.Column(chunk)
		vel := velocity.Column(chunk)
		for i := 0; i < chunk.Count(); i++ {
			pos.At(i).X += vel.At(i).X
		}
	}

The world core is single-threaded per tick: systems run to completion one
after another, and structural mutation (create/destroy entity, add/remove
component) is forbidden while a query walk is in progress on that world.
*/
package ecs
