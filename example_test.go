package ecs_test

import (
	"fmt"

	ecs "github.com/wrenfield/ecscore"
)

type Position struct{ X, Y, Z float64 }
type Velocity struct{ X, Y, Z float64 }

func Example() {
	world := ecs.NewWorld()

	position := ecs.FactoryNewComponent[Position]()
	velocity := ecs.FactoryNewComponent[Velocity]()

	e, _ := world.CreateEntity(position, velocity)
	ecs.AddComponent(world, e, position, Position{X: 1, Y: 2, Z: 3})
	ecs.AddComponent(world, e, velocity, Velocity{X: 10})

	q := ecs.Factory.NewQuery().With(position, velocity).Compile()
	for chunk := range world.Query(q) {
		positions := position.Column(chunk)
		for row := 0; row < chunk.Count(); row++ {
			pos := positions.At(row)
			fmt.Printf("%.0f,%.0f,%.0f\n", pos.X, pos.Y, pos.Z)
		}
	}

	// Output:
	// 1,2,3
}
