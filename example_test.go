package depot_test

import (
	"errors"
	"fmt"

	"github.com/TheBitDrifter/depot"
	"github.com/go-gl/mathgl/mgl64"
)

// Position is a 2D coordinate component
type Position struct {
	mgl64.Vec2
}

// Velocity is a 2D movement component
type Velocity struct {
	mgl64.Vec2
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// Example_basic shows entity creation and a typed view
func Example_basic() {
	world := depot.Factory.NewWorld(nil)

	for i := 0; i < 5; i++ {
		world.NewEntity(depot.With(Position{}))
	}
	for i := 0; i < 3; i++ {
		world.NewEntity(depot.With(Position{}), depot.With(Velocity{mgl64.Vec2{1, 1}}))
	}
	world.NewEntity(
		depot.With(Position{mgl64.Vec2{10, 20}}),
		depot.With(Velocity{mgl64.Vec2{1, 2}}),
		depot.With(Name{"Player"}),
	)

	moving := depot.NewView2[Position, Velocity](world)
	fmt.Printf("Found %d entities with position and velocity\n", moving.Count())

	depot.NewView3[Position, Velocity, Name](world).Each(func(_ depot.Entity, pos *Position, vel *Velocity, name *Name) {
		pos.Vec2 = pos.Add(vel.Vec2)
		fmt.Printf("Updated %s to position (%.1f, %.1f)\n", name.Value, pos.X(), pos.Y())
	})

	// Output:
	// Found 4 entities with position and velocity
	// Updated Player to position (11.0, 22.0)
}

// Example_views shows how views are narrowed
func Example_views() {
	world := depot.Factory.NewWorld(nil)
	position := depot.Type[Position]()
	velocity := depot.Type[Velocity]()
	name := depot.Type[Name]()

	for i := 0; i < 3; i++ {
		world.NewEntity(position.With(Position{}))
		world.NewEntity(position.With(Position{}), velocity.With(Velocity{}))
		world.NewEntity(position.With(Position{}), name.With(Name{}))
		world.NewEntity(position.With(Position{}), velocity.With(Velocity{}), name.With(Name{}))
	}

	both := depot.NewView(world, position, velocity)
	fmt.Printf("Position and Velocity matched %d entities\n", both.Count())

	named := depot.NewView(world, position).Include(name)
	fmt.Printf("Include Name matched %d entities\n", named.Count())

	still := depot.NewView(world, position).Exclude(velocity)
	fmt.Printf("Exclude Velocity matched %d entities\n", still.Count())

	bare := depot.NewView(world, position).Exclude(velocity, name)
	fmt.Printf("Exclude Velocity and Name matched %d entities\n", bare.Count())

	// Output:
	// Position and Velocity matched 6 entities
	// Include Name matched 6 entities
	// Exclude Velocity matched 6 entities
	// Exclude Velocity and Name matched 3 entities
}

// Example_deferred shows structural changes queued during iteration
func Example_deferred() {
	world := depot.Factory.NewWorld(nil)
	for i := 0; i < 4; i++ {
		world.NewEntity(depot.With(Position{mgl64.Vec2{float64(i), 0}}))
	}

	cursor := depot.NewView(world, depot.Type[Position]()).Cursor()
	position := depot.Type[Position]()
	for cursor.Next() {
		if position.GetFromCursor(cursor).X() >= 2 {
			world.EnqueueDestroy(cursor.Entity())
		}
	}
	fmt.Printf("%d entities left\n", world.Len())

	// Output:
	// 2 entities left
}

// Example_errors shows the error values returned for misuse
func Example_errors() {
	world := depot.Factory.NewWorld(nil)
	e, _ := world.NewEntity(depot.With(Name{"crate"}))

	err := world.Attach(e, depot.With(Name{"box"}))
	var exists depot.ComponentExistsError
	fmt.Println(errors.As(err, &exists))

	_, err = depot.Get[Velocity](world, e)
	var missing depot.ComponentNotFoundError
	fmt.Println(errors.As(err, &missing))

	world.DestroyEntity(e)
	_, err = depot.Get[Name](world, e)
	var invalid depot.InvalidHandleError
	fmt.Println(errors.As(err, &invalid))

	// Output:
	// true
	// true
	// true
}
