package depot

import (
	"errors"
	"slices"
	"testing"
)

// populate builds archetypes {Position}, {Position Velocity},
// {Position Velocity Health} and {Velocity} with two entities each
func populate(t *testing.T, world *World) map[string][]Entity {
	t.Helper()
	groups := map[string][]Entity{}
	shapes := []struct {
		name   string
		values func(i int) []Value
	}{
		{"P", func(i int) []Value { return []Value{With(Position{X: float64(i)})} }},
		{"PV", func(i int) []Value {
			return []Value{With(Position{X: float64(i)}), With(Velocity{X: float64(i)})}
		}},
		{"PVH", func(i int) []Value {
			return []Value{With(Position{X: float64(i)}), With(Velocity{X: float64(i)}), With(Health{Current: i})}
		}},
		{"V", func(i int) []Value { return []Value{With(Velocity{X: float64(i)})} }},
	}
	n := 0
	for _, shape := range shapes {
		for j := 0; j < 2; j++ {
			e, err := world.NewEntity(shape.values(n)...)
			if err != nil {
				t.Fatalf("Failed to create entity: %v", err)
			}
			groups[shape.name] = append(groups[shape.name], e)
			n++
		}
	}
	return groups
}

func TestViewMatching(t *testing.T) {
	world := newTestWorld(t)
	groups := populate(t, world)

	tests := []struct {
		name string
		view func() *View
		want []Entity
	}{
		{
			"Superset archetypes in archetype-then-row order",
			func() *View { return NewView(world, Type[Position](), Type[Velocity]()) },
			slices.Concat(groups["PV"], groups["PVH"]),
		},
		{
			"Exclude drops overlapping archetypes",
			func() *View { return NewView(world, Type[Position](), Type[Velocity]()).Exclude(Type[Health]()) },
			groups["PV"],
		},
		{
			"Include narrows to supersets",
			func() *View { return NewView(world, Type[Velocity]()).Include(Type[Health]()) },
			groups["PVH"],
		},
		{
			"Exclude of any listed type",
			func() *View { return NewView(world, Type[Velocity]()).Exclude(Type[Position](), Type[Health]()) },
			groups["V"],
		},
		{
			"Unregistered required type matches nothing",
			func() *View { return NewView(world, Type[Position](), Type[string]()) },
			nil,
		},
		{
			"Unregistered excluded type is ignored",
			func() *View { return NewView(world, Type[Health]()).Exclude(Type[string]()) },
			groups["PVH"],
		},
		{
			"Exclude without types keeps everything",
			func() *View { return NewView(world, Type[Health]()).Exclude() },
			groups["PVH"],
		},
		{
			"Exclude of unregistered and registered types",
			func() *View { return NewView(world, Type[Position]()).Exclude(Type[string](), Type[Velocity]()) },
			groups["P"],
		},
		{
			"Unregistered included type clears the view",
			func() *View { return NewView(world, Type[Health]()).Include(Type[string]()) },
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tt.view()
			got := slices.Collect(view.Entities())
			if !slices.Equal(got, tt.want) {
				t.Errorf("entities = %v, want %v", got, tt.want)
			}
			if view.Count() != len(tt.want) {
				t.Errorf("Count = %d, want %d", view.Count(), len(tt.want))
			}
		})
	}
}

func TestViewPositionVelocity(t *testing.T) {
	world := newTestWorld(t)
	e1, _ := world.NewEntity()
	e2, _ := world.NewEntity()
	e3, _ := world.NewEntity()
	world.Attach(e1, With(Position{}))
	world.Attach(e2, With(Position{}), With(Velocity{}))
	world.Attach(e3, With(Velocity{}))

	got := slices.Collect(NewView1[Position](world).Entities())
	if !slices.Equal(got, []Entity{e1, e2}) {
		t.Errorf("View<Position> = %v, want [%v %v]", got, e1, e2)
	}

	got = slices.Collect(NewView1[Position](world).Exclude(Type[Velocity]()).Entities())
	if !slices.Equal(got, []Entity{e1}) {
		t.Errorf("View<Position> excluding Velocity = %v, want [%v]", got, e1)
	}
}

func TestViewSnapshot(t *testing.T) {
	world := newTestWorld(t)
	groups := populate(t, world)

	view := NewView(world, Type[Health]())
	if view.Archetypes() != 1 {
		t.Fatalf("Archetypes = %d, want 1", view.Archetypes())
	}

	// Archetypes created after construction are not picked up
	world.NewEntity(With(Health{}), With(Velocity{}))
	if view.Archetypes() != 1 {
		t.Errorf("snapshot grew to %d archetypes", view.Archetypes())
	}
	if fresh := NewView(world, Type[Health]()); fresh.Archetypes() != 2 {
		t.Errorf("fresh view matched %d archetypes, want 2", fresh.Archetypes())
	}

	// Emptied archetypes yield nothing
	for _, e := range groups["PVH"] {
		Detach[Health](world, e)
	}
	if n := len(slices.Collect(view.Entities())); n != 0 {
		t.Errorf("view over emptied archetype yielded %d entities", n)
	}
	if n := NewView(world, Type[Position](), Type[Velocity](), Type[Health]()).Archetypes(); n != 0 {
		t.Errorf("view built over emptied archetype matched %d archetypes", n)
	}
}

func TestCursor(t *testing.T) {
	world := newTestWorld(t)
	groups := populate(t, world)
	view := NewView(world, Type[Position]())

	cursor := view.Cursor()
	if cursor.TotalMatched() != 6 {
		t.Errorf("TotalMatched = %d, want 6", cursor.TotalMatched())
	}

	var rows []int
	var remaining []int
	for cursor.Next() {
		if !world.Locked() {
			t.Fatalf("world not locked during iteration")
		}
		rows = append(rows, cursor.Row())
		remaining = append(remaining, cursor.RemainingInArchetype())
	}
	if world.Locked() {
		t.Errorf("world still locked after iteration")
	}
	if !slices.Equal(rows, []int{0, 1, 0, 1, 0, 1}) {
		t.Errorf("rows = %v", rows)
	}
	if !slices.Equal(remaining, []int{1, 0, 1, 0, 1, 0}) {
		t.Errorf("remaining = %v", remaining)
	}

	// Exhausted cursors restart from the beginning
	if !cursor.Next() || cursor.Entity() != groups["P"][0] {
		t.Errorf("cursor did not restart")
	}
	cursor.Reset()
	if world.Locked() {
		t.Errorf("Reset did not release the lock")
	}
}

func TestCursorAccessors(t *testing.T) {
	world := newTestWorld(t)
	populate(t, world)

	healthAccessor := Type[Health]()
	posAccessor := Type[Position]()
	withHealth := 0

	cursor := NewView(world, Type[Position]()).Cursor()
	for cursor.Next() {
		pos := posAccessor.GetFromCursor(cursor)
		pos.Y = 1
		if ok, h := healthAccessor.GetFromCursorSafe(cursor); ok {
			if h.Current != int(pos.X) {
				t.Errorf("Health %d does not belong to Position %v", h.Current, pos.X)
			}
			withHealth++
		}
		if healthAccessor.CheckCursor(cursor) != Has[Health](world, cursor.Entity()) {
			t.Errorf("CheckCursor disagrees with Has for %v", cursor.Entity())
		}
	}
	if withHealth != 2 {
		t.Errorf("found Health on %d entities, want 2", withHealth)
	}

	for e, pos := range NewView1[Position](world).All() {
		if pos.Y != 1 {
			t.Errorf("write through cursor lost for %v", e)
		}
		if viaEntity, _ := posAccessor.GetFromEntity(world, e); viaEntity != pos {
			t.Errorf("GetFromEntity returned a different reference for %v", e)
		}
	}
}

func TestTypedViews(t *testing.T) {
	world := newTestWorld(t)
	groups := populate(t, world)

	NewView2[Position, Velocity](world).Each(func(e Entity, pos *Position, vel *Velocity) {
		pos.X += vel.X
	})
	for _, e := range groups["PV"] {
		pos, _ := Get[Position](world, e)
		vel, _ := Get[Velocity](world, e)
		if pos.X != 2*vel.X {
			t.Errorf("Each did not update %v: %v", e, pos.X)
		}
	}

	visited := 0
	NewView3[Position, Velocity, Health](world).Each(func(e Entity, _ *Position, _ *Velocity, h *Health) {
		h.Max = 100
		visited++
	})
	if visited != 2 {
		t.Errorf("View3 visited %d, want 2", visited)
	}

	it := NewView2[Velocity, Position](world).Exclude(Type[Health]()).Iter()
	count := 0
	for it.Next() {
		vel, pos := it.Get()
		if pos.X != 2*vel.X {
			t.Errorf("Iterator2 yielded mismatched components")
		}
		count++
	}
	if count != 2 {
		t.Errorf("Iterator2 visited %d, want 2", count)
	}
}

func TestViewCaches(t *testing.T) {
	world := newTestWorld(t)
	populate(t, world)

	archetypes, rows := 0, 0
	for cache := range NewView1[Velocity](world).Caches() {
		archetypes++
		for row := 0; row < cache.Len(); row++ {
			vel := cache.Group(row)
			vel.Y = -1
			rows++
		}
	}
	if archetypes != 3 || rows != 6 {
		t.Errorf("Caches covered %d archetypes and %d rows, want 3 and 6", archetypes, rows)
	}
	if world.Locked() {
		t.Errorf("world still locked after Caches")
	}

	for cache := range NewView2[Velocity, Health](world).Caches() {
		for row := 0; row < cache.Len(); row++ {
			vel, h := cache.Group(row)
			if vel.Y != -1 || h.Current != int(vel.X) {
				t.Errorf("cache row %d of %v is inconsistent", row, cache.Entity(row))
			}
		}
	}
}

func TestMutationDuringIteration(t *testing.T) {
	world := newTestWorld(t)
	groups := populate(t, world)

	cursor := NewView(world, Type[Velocity]()).Cursor()
	for cursor.Next() {
		if err := world.DestroyEntity(cursor.Entity()); !errors.Is(err, LockedWorldError{}) {
			t.Fatalf("DestroyEntity while iterating: err = %v, want LockedWorldError", err)
		}
		if err := world.EnqueueDestroy(cursor.Entity()); err != nil {
			t.Fatalf("EnqueueDestroy failed: %v", err)
		}
	}
	if err := cursor.Err(); err != nil {
		t.Fatalf("queued operations failed: %v", err)
	}

	if world.Len() != len(groups["P"]) {
		t.Errorf("Len = %d after deferred destroys, want %d", world.Len(), len(groups["P"]))
	}
}
