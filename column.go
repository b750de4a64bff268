package depot

// column is the type-erased view of one component column in an archetype
type column interface {
	len() int
	swapRemove(row int)
	// carry appends a copy of src's value at row; src holds the same component type
	carry(src column, row int)
	clone() column
}

type typedColumn[T any] struct {
	seq Sequence[T]
}

func newTypedColumn[T any](seq Sequence[T]) *typedColumn[T] {
	return &typedColumn[T]{seq: seq}
}

func (c *typedColumn[T]) len() int {
	return c.seq.Len()
}

func (c *typedColumn[T]) swapRemove(row int) {
	c.seq.SwapRemove(row)
}

func (c *typedColumn[T]) carry(src column, row int) {
	c.seq.Append(*src.(*typedColumn[T]).seq.At(row))
}

func (c *typedColumn[T]) clone() column {
	return &typedColumn[T]{seq: c.seq.Clone()}
}

func (c *typedColumn[T]) at(row int) *T {
	return c.seq.At(row)
}
