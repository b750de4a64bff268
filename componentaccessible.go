package depot

// Accessor is a component type token that can also read values of that type
// from cursors and entities
type Accessor[T any] struct {
	componentType[T]
}

// Type returns the accessor for component type T
// Accessors are usable wherever a ComponentType is expected.
func Type[T any]() Accessor[T] {
	return Accessor[T]{}
}
