package depot

import (
	"reflect"
)

// ComponentID is the registry-assigned identity of a component type
type ComponentID uint32

// ComponentType identifies a component type independently of any registry
// Obtain one with Type.
type ComponentType interface {
	Type() reflect.Type
	defaultColumn() column
}

// Value is a typed component value ready to be attached to an entity
// Obtain one with With.
type Value interface {
	ComponentType
	push(c column)
}

// Sequence is the growable storage backing one component column
//
// Implementations must keep values dense: SwapRemove moves the last value into
// index i and shrinks the sequence by one.
type Sequence[T any] interface {
	Append(v T)
	At(i int) *T
	SwapRemove(i int)
	Len() int
	Clone() Sequence[T]
}

// EntityDestroyCallback is invoked after an entity has been destroyed
type EntityDestroyCallback func(Entity)
