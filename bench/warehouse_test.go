package bench

import (
	"testing"

	ecs "github.com/wrenfield/ecscore"
)

const (
	nPos    = 10000
	nPosVel = 10000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

func BenchmarkIterEcscoreGet(b *testing.B) {
	b.StopTimer()

	velocity := ecs.FactoryNewComponent[Velocity]()
	position := ecs.FactoryNewComponent[Position]()
	world := ecs.NewWorld()

	for i := 0; i < nPosVel; i++ {
		world.CreateEntity(position, velocity)
	}
	for i := 0; i < nPos; i++ {
		world.CreateEntity(position)
	}

	q := ecs.Factory.NewQuery().With(position, velocity).Compile()

	b.StartTimer()

	for i := 0; i < b.N; i++ {
		for chunk := range world.Query(q) {
			positions := position.Column(chunk)
			velocities := velocity.Column(chunk)
			for row := 0; row < chunk.Count(); row++ {
				pos := positions.At(row)
				vel := velocities.At(row)
				pos.X += vel.X
				pos.Y += vel.Y
			}
		}
	}
}
