package depot

import "reflect"

var (
	_ ComponentType = componentType[struct{}]{}
	_ Value         = value[struct{}]{}
)

type componentType[T any] struct{}

func (componentType[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (componentType[T]) defaultColumn() column {
	return newTypedColumn[T](NewSlice[T]())
}

type value[T any] struct {
	componentType[T]
	v T
}

// With wraps v for Attach and NewEntity
func With[T any](v T) Value {
	return value[T]{v: v}
}

func (val value[T]) push(c column) {
	c.(*typedColumn[T]).seq.Append(val.v)
}
