/*
Package depot provides archetype-based in-memory storage for entities and their components.

Entities are lightweight handles. Components are plain Go values of any type,
attached to entities in arbitrary combinations. Entities carrying exactly the
same set of component types share an archetype, a table storing one dense
column per component type, so iterating every entity with a given set of
components walks contiguous memory.

Core Concepts:

  - Entity: A generational handle identifying one logical object.
  - Component: A value type; one column per type per archetype.
  - Signature: The set of component ids an entity or archetype carries.
  - Archetype: Dense columnar storage for all entities sharing one signature.
  - View: A snapshot query over archetypes, narrowed with Include and Exclude.

Basic Usage:

	world := depot.Factory.NewWorld(nil)

	// Create entities
	player, _ := world.NewEntity(depot.With(Position{}), depot.With(Velocity{X: 1}))
	world.NewEntity(depot.With(Position{X: 5}))

	// Change components
	world.Attach(player, depot.With(Name{"player"}))
	depot.Detach[Name](world, player)

	// Query entities and process them
	view := depot.NewView2[Position, Velocity](world)
	it := view.Iter()
	for it.Next() {
		pos, vel := it.Get()
		pos.X += vel.X
		pos.Y += vel.Y
	}

	// Narrow a query
	still := depot.NewView1[Position](world).Exclude(depot.Type[Velocity]())
	for e, pos := range still.All() {
		fmt.Println(e, pos)
	}

A World is single-writer. Iterating a cursor locks the world; structural changes
made while locked fail with LockedWorldError unless queued through the Enqueue
methods, which run once the last lock is released.
*/
package depot
