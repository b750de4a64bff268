package depot

var (
	_ Sequence[int] = &Slice[int]{}
	_ Sequence[int] = &Paged[int]{}
)

// Slice is the default Sequence, a single growable slice
type Slice[T any] struct {
	items []T
}

// NewSlice returns an empty Slice
func NewSlice[T any]() Sequence[T] {
	return &Slice[T]{}
}

func (s *Slice[T]) Append(v T) {
	s.items = append(s.items, v)
}

func (s *Slice[T]) At(i int) *T {
	return &s.items[i]
}

func (s *Slice[T]) SwapRemove(i int) {
	last := len(s.items) - 1
	s.items[i] = s.items[last]
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
}

func (s *Slice[T]) Len() int {
	return len(s.items)
}

func (s *Slice[T]) Clone() Sequence[T] {
	items := make([]T, len(s.items))
	copy(items, s.items)
	return &Slice[T]{items: items}
}

// Paged stores values in fixed size pages
//
// References returned by At stay valid across Append, since pages are never
// reallocated. Useful for large component types or when callers hold pointers
// while the archetype grows.
type Paged[T any] struct {
	pages    [][]T
	pageSize int
	length   int
}

// NewPaged returns an empty Paged sequence; pageSize values below one are raised to one
func NewPaged[T any](pageSize int) *Paged[T] {
	return &Paged[T]{pageSize: max(pageSize, 1)}
}

func (p *Paged[T]) Append(v T) {
	page, offset := p.length/p.pageSize, p.length%p.pageSize
	if page == len(p.pages) {
		p.pages = append(p.pages, make([]T, p.pageSize))
	}
	p.pages[page][offset] = v
	p.length++
}

func (p *Paged[T]) At(i int) *T {
	if i < 0 || i >= p.length {
		panic("depot: paged sequence index out of range")
	}
	return &p.pages[i/p.pageSize][i%p.pageSize]
}

func (p *Paged[T]) SwapRemove(i int) {
	last := p.length - 1
	hole, tail := p.At(i), p.At(last)
	*hole = *tail
	var zero T
	*tail = zero
	p.length--
}

func (p *Paged[T]) Len() int {
	return p.length
}

func (p *Paged[T]) Clone() Sequence[T] {
	out := &Paged[T]{
		pages:    make([][]T, len(p.pages)),
		pageSize: p.pageSize,
		length:   p.length,
	}
	for i, page := range p.pages {
		out.pages[i] = make([]T, p.pageSize)
		copy(out.pages[i], page)
	}
	return out
}
