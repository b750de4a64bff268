package depot

// GetFromCursor retrieves the component value of the entity at the cursor position
// It panics if the current archetype does not carry T; see GetFromCursorSafe.
func (c Accessor[T]) GetFromCursor(cursor *Cursor) *T {
	ok, v := c.GetFromCursorSafe(cursor)
	if !ok {
		panic("depot: component " + c.Type().String() + " not present at cursor")
	}
	return v
}

// GetFromCursorSafe retrieves the component value if the current archetype carries T
func (c Accessor[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	if cursor.current == nil {
		return false, nil
	}
	id, ok := cursor.world.registry.lookup(c)
	if !ok {
		return false, nil
	}
	col, ok := cursor.current.column(id)
	if !ok {
		return false, nil
	}
	return true, col.(*typedColumn[T]).at(cursor.row)
}

// CheckCursor determines if the component exists in the archetype at the cursor position
func (c Accessor[T]) CheckCursor(cursor *Cursor) bool {
	if cursor.current == nil {
		return false
	}
	id, ok := cursor.world.registry.lookup(c)
	return ok && cursor.current.signature.Test(id)
}

// GetFromEntity retrieves the component value of e
func (c Accessor[T]) GetFromEntity(w *World, e Entity) (*T, error) {
	return Get[T](w, e)
}

// With pairs v with this accessor's type for Attach and NewEntity
func (c Accessor[T]) With(v T) Value {
	return value[T]{v: v}
}
