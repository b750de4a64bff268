// Profiling:
// go build ./profile
// go tool pprof -http=":8000" -nodefraction=0.001 ./profile cpu.pprof

package main

import (
	"github.com/TheBitDrifter/depot"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		world := depot.Factory.NewWorld(nil)
		for range numEntities {
			world.NewEntity(depot.With(position{}), depot.With(velocity{X: 1, Y: 1}))
		}
		view := depot.NewView2[position, velocity](world)

		for range iters {
			it := view.Iter()
			for it.Next() {
				pos, vel := it.Get()
				pos.X += vel.X
				pos.Y += vel.Y
				if pos.X > 100 {
					world.EnqueueDestroy(it.Entity())
				}
			}
		}
	}
}
