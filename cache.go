package depot

// Cache1 resolves the column of one component type in a single archetype
// so that a full scan of the archetype pays the column lookup once.
type Cache1[A any] struct {
	arch *archetype
	a    *typedColumn[A]
}

func newCache1[A any](arch *archetype, ids [1]ComponentID) Cache1[A] {
	return Cache1[A]{
		arch: arch,
		a:    typedColumnOf[A](arch, ids[0]),
	}
}

// Len returns the number of rows in the cached archetype
func (c Cache1[A]) Len() int {
	return c.arch.len()
}

// Entity returns the entity at row
func (c Cache1[A]) Entity(row int) Entity {
	return c.arch.entities[row]
}

// Group returns the component references at row
func (c Cache1[A]) Group(row int) *A {
	return c.a.at(row)
}

// Cache2 is Cache1 for two component types
type Cache2[A, B any] struct {
	arch *archetype
	a    *typedColumn[A]
	b    *typedColumn[B]
}

func newCache2[A, B any](arch *archetype, ids [2]ComponentID) Cache2[A, B] {
	return Cache2[A, B]{
		arch: arch,
		a:    typedColumnOf[A](arch, ids[0]),
		b:    typedColumnOf[B](arch, ids[1]),
	}
}

func (c Cache2[A, B]) Len() int {
	return c.arch.len()
}

func (c Cache2[A, B]) Entity(row int) Entity {
	return c.arch.entities[row]
}

func (c Cache2[A, B]) Group(row int) (*A, *B) {
	return c.a.at(row), c.b.at(row)
}

// Cache3 is Cache1 for three component types
type Cache3[A, B, C any] struct {
	arch *archetype
	a    *typedColumn[A]
	b    *typedColumn[B]
	c    *typedColumn[C]
}

func newCache3[A, B, C any](arch *archetype, ids [3]ComponentID) Cache3[A, B, C] {
	return Cache3[A, B, C]{
		arch: arch,
		a:    typedColumnOf[A](arch, ids[0]),
		b:    typedColumnOf[B](arch, ids[1]),
		c:    typedColumnOf[C](arch, ids[2]),
	}
}

func (c Cache3[A, B, C]) Len() int {
	return c.arch.len()
}

func (c Cache3[A, B, C]) Entity(row int) Entity {
	return c.arch.entities[row]
}

func (c Cache3[A, B, C]) Group(row int) (*A, *B, *C) {
	return c.a.at(row), c.b.at(row), c.c.at(row)
}

func typedColumnOf[T any](arch *archetype, id ComponentID) *typedColumn[T] {
	col, ok := arch.column(id)
	if !ok {
		panic("depot: cached component missing from archetype " + arch.signature.String())
	}
	return col.(*typedColumn[T])
}
