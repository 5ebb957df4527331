package ecs

import "time"

// Position and Velocity are the two components exercised by MovementSystem
// (§8 S1). They are ordinary data components, defined here rather than in
// a test file since MovementSystem is itself a concrete, reusable system.
type Position struct {
	X, Y, Z float64
}

type Velocity struct {
	X, Y, Z float64
}

var (
	PositionComponent = FactoryNewComponent[Position]()
	VelocityComponent = FactoryNewComponent[Velocity]()
)

// MovementSystem integrates Velocity into Position once per tick and
// publishes a PositionChangedIntent per moved entity, in chunk-visit order.
type MovementSystem struct {
	order int
}

// NewMovementSystem builds a MovementSystem scheduled at the given Update
// order.
func NewMovementSystem(order int) *MovementSystem {
	return &MovementSystem{order: order}
}

func (s *MovementSystem) Phase() Phase { return Update }
func (s *MovementSystem) Order() int   { return s.order }

func (s *MovementSystem) Update(w *World, dt time.Duration) {
	seconds := dt.Seconds()
	q := Factory.NewQuery().With(PositionComponent, VelocityComponent).Compile()

	for chunk := range w.Query(q) {
		positions := PositionComponent.Column(chunk)
		velocities := VelocityComponent.Column(chunk)
		for row := 0; row < chunk.Count(); row++ {
			pos := positions.At(row)
			vel := velocities.At(row)
			pos.X += vel.X * seconds
			pos.Y += vel.Y * seconds
			pos.Z += vel.Z * seconds

			e, err := chunk.Entity(row)
			if err != nil {
				continue
			}
			Events[PositionChangedIntent](w).Publish(PositionChangedIntent{
				Entity: e, X: pos.X, Y: pos.Y, Z: pos.Z,
			})
		}
	}
}
