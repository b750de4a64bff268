// Package slotmap provides a dense container addressed by stable generational handles.
//
// Values live in one contiguous slice. A sparse slot table maps each handle to the
// current dense position of its value, so erasing swap-removes the dense storage
// while every other handle stays valid. The handle generation is bumped whenever
// a slot is retired, which makes handles to destroyed values detectably stale
// even after their slot has been reused.
package slotmap

import (
	"fmt"
	"iter"
)

// Handle addresses one value in a Map
//
// Two handles are equal only if both the slot index and the generation match.
type Handle struct {
	index      uint32
	generation uint32
}

// NewHandle builds a handle from its raw parts
func NewHandle(index, generation uint32) Handle {
	return Handle{index: index, generation: generation}
}

// Index returns the reusable slot index
func (h Handle) Index() uint32 {
	return h.index
}

// Generation returns the disambiguator of the slot at the time the handle was issued
func (h Handle) Generation() uint32 {
	return h.generation
}

// IsZero reports whether h is the zero handle, which is never issued
func (h Handle) IsZero() bool {
	return h.index == 0 && h.generation == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("Handle(%d:%d)", h.index, h.generation)
}

type slot struct {
	dense      uint32
	generation uint32
	live       bool
}

// Map is a stable-handle container
//
// Map is not safe for concurrent mutation.
type Map[V any] struct {
	slots  []slot
	values []V
	owners []uint32 // dense position -> slot index
	free   []uint32
}

// New creates an empty map with room for capacity values
func New[V any](capacity int) *Map[V] {
	return &Map[V]{
		slots:  make([]slot, 0, capacity),
		values: make([]V, 0, capacity),
		owners: make([]uint32, 0, capacity),
	}
}

// Push stores v and returns a fresh handle for it
func (m *Map[V]) Push(v V) Handle {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot{generation: 1})
	}
	s := &m.slots[idx]
	s.dense = uint32(len(m.values))
	s.live = true
	m.values = append(m.values, v)
	m.owners = append(m.owners, idx)
	return Handle{index: idx, generation: s.generation}
}

// Erase retires h and frees its slot for reuse
//
// The last dense value is moved into the hole left behind. When that happens the
// handle of the moved value is returned with moved set to true.
func (m *Map[V]) Erase(h Handle) (relocated Handle, moved bool, err error) {
	s, err := m.lookup(h)
	if err != nil {
		return Handle{}, false, err
	}
	hole := s.dense
	last := uint32(len(m.values) - 1)
	if hole != last {
		owner := m.owners[last]
		m.values[hole] = m.values[last]
		m.owners[hole] = owner
		m.slots[owner].dense = hole
		relocated = Handle{index: owner, generation: m.slots[owner].generation}
		moved = true
	}
	var zero V
	m.values[last] = zero
	m.values = m.values[:last]
	m.owners = m.owners[:last]

	s.live = false
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	m.free = append(m.free, h.index)
	return relocated, moved, nil
}

// Get returns a mutable reference to the value addressed by h
//
// The reference is invalidated by the next Push or Erase.
func (m *Map[V]) Get(h Handle) (*V, error) {
	s, err := m.lookup(h)
	if err != nil {
		return nil, err
	}
	return &m.values[s.dense], nil
}

// Contains reports whether h addresses a live value
func (m *Map[V]) Contains(h Handle) bool {
	_, err := m.lookup(h)
	return err == nil
}

// Len returns the number of live values
func (m *Map[V]) Len() int {
	return len(m.values)
}

// All iterates live values in dense order
func (m *Map[V]) All() iter.Seq2[Handle, *V] {
	return func(yield func(Handle, *V) bool) {
		for i := range m.values {
			owner := m.owners[i]
			h := Handle{index: owner, generation: m.slots[owner].generation}
			if !yield(h, &m.values[i]) {
				return
			}
		}
	}
}

// Clone returns an independent copy; values are copied shallowly
func (m *Map[V]) Clone() *Map[V] {
	out := &Map[V]{
		slots:  make([]slot, len(m.slots)),
		values: make([]V, len(m.values)),
		owners: make([]uint32, len(m.owners)),
		free:   make([]uint32, len(m.free)),
	}
	copy(out.slots, m.slots)
	copy(out.values, m.values)
	copy(out.owners, m.owners)
	copy(out.free, m.free)
	return out
}

func (m *Map[V]) lookup(h Handle) (*slot, error) {
	if int(h.index) >= len(m.slots) {
		return nil, StaleHandleError{Handle: h}
	}
	s := &m.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil, StaleHandleError{Handle: h}
	}
	return s, nil
}

// StaleHandleError reports access through a retired or never issued handle
type StaleHandleError struct {
	Handle Handle
}

func (e StaleHandleError) Error() string {
	return fmt.Sprintf("stale or unknown handle %v", e.Handle)
}
