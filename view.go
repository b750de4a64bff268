package depot

import (
	"iter"
)

// View is a snapshot of the archetypes holding a required set of components
//
// Construction scans the world once. Archetypes created afterwards are not
// picked up; build a new view to see them. Structural changes to the world while
// a view is iterated invalidate the iteration, which is why cursors lock it.
type View struct {
	world    *World
	required Signature
	filters  []filterNode
	matched  []archetypeID
}

// NewView selects the non-empty archetypes carrying every one of types
func NewView(w *World, types ...ComponentType) *View {
	v := &View{world: w}
	sig, complete := w.registry.lookupSignature(types...)
	if !complete {
		// A type the registry never saw cannot be carried by any archetype
		return v
	}
	v.required = sig
	v.filters = append(v.filters, filterNode{op: OpAnd, signature: sig})
	for _, arch := range w.archetypes.asSlice {
		if !arch.empty() && arch.signature.Includes(sig) {
			v.matched = append(v.matched, arch.id)
		}
	}
	return v
}

// Include narrows the view to archetypes that also carry every one of types
func (v *View) Include(types ...ComponentType) *View {
	sig, complete := v.world.registry.lookupSignature(types...)
	if !complete {
		v.matched = nil
		return v
	}
	return v.narrow(filterNode{op: OpAnd, signature: sig})
}

// Exclude narrows the view to archetypes carrying none of types
func (v *View) Exclude(types ...ComponentType) *View {
	sig, _ := v.world.registry.lookupSignature(types...)
	return v.narrow(filterNode{op: OpNot, signature: sig})
}

func (v *View) narrow(node filterNode) *View {
	v.filters = append(v.filters, node)
	kept := make([]archetypeID, 0, len(v.matched))
	for _, id := range v.matched {
		arch := v.world.archetypeFor(id)
		if !arch.empty() && node.Evaluate(arch.signature) {
			kept = append(kept, id)
		}
	}
	v.matched = kept
	return v
}

// Required returns the signature the view was built for
func (v *View) Required() Signature {
	return v.required
}

// Archetypes returns the number of matched archetypes
func (v *View) Archetypes() int {
	return len(v.matched)
}

// Count returns the number of entities currently held by the matched archetypes
func (v *View) Count() int {
	total := 0
	for _, id := range v.matched {
		total += v.world.archetypeFor(id).len()
	}
	return total
}

// Cursor returns a new cursor over the view
func (v *View) Cursor() *Cursor {
	return newCursor(v)
}

// Entities yields every matched entity in archetype-then-row order
func (v *View) Entities() iter.Seq[Entity] {
	return v.Cursor().Entities()
}

func (v *View) lookupIDs(types ...ComponentType) []ComponentID {
	ids := make([]ComponentID, len(types))
	for i, ct := range types {
		ids[i], _ = v.world.registry.lookup(ct)
	}
	return ids
}

// each visits every non-empty matched archetype with the world locked
func (v *View) each(fn func(*archetype) bool) {
	v.world.Lock()
	defer func() {
		if err := v.world.Unlock(); err != nil {
			Config.logger.Warn("queued operations failed", "err", err)
		}
	}()
	for _, id := range v.matched {
		arch := v.world.archetypeFor(id)
		if arch.empty() {
			continue
		}
		if !fn(arch) {
			return
		}
	}
}

// View1 is a view yielding one component per entity
type View1[A any] struct {
	*View
	ids [1]ComponentID
}

// NewView1 builds a view over entities carrying A
func NewView1[A any](w *World) *View1[A] {
	a := componentType[A]{}
	v := &View1[A]{View: NewView(w, a)}
	copy(v.ids[:], v.View.lookupIDs(a))
	return v
}

func (v *View1[A]) Include(types ...ComponentType) *View1[A] {
	v.View.Include(types...)
	return v
}

func (v *View1[A]) Exclude(types ...ComponentType) *View1[A] {
	v.View.Exclude(types...)
	return v
}

// Iter returns a typed cursor over the view
func (v *View1[A]) Iter() *Iterator1[A] {
	it := &Iterator1[A]{Cursor: newCursor(v.View)}
	it.onAdvance = func(arch *archetype) {
		it.cache = newCache1[A](arch, v.ids)
	}
	return it
}

// All yields each matched entity with its component
func (v *View1[A]) All() iter.Seq2[Entity, *A] {
	return func(yield func(Entity, *A) bool) {
		it := v.Iter()
		for it.Next() {
			if !yield(it.Entity(), it.Get()) {
				it.Reset()
				return
			}
		}
	}
}

// Caches yields one resolved column cache per non-empty matched archetype
func (v *View1[A]) Caches() iter.Seq[Cache1[A]] {
	return func(yield func(Cache1[A]) bool) {
		v.each(func(arch *archetype) bool {
			return yield(newCache1[A](arch, v.ids))
		})
	}
}

// Iterator1 is a cursor that also resolves A for the current entity
type Iterator1[A any] struct {
	*Cursor
	cache Cache1[A]
}

// Get returns the component of the current entity
func (it *Iterator1[A]) Get() *A {
	return it.cache.Group(it.row)
}

// View2 is a view yielding two components per entity
type View2[A, B any] struct {
	*View
	ids [2]ComponentID
}

// NewView2 builds a view over entities carrying A and B
func NewView2[A, B any](w *World) *View2[A, B] {
	a, b := componentType[A]{}, componentType[B]{}
	v := &View2[A, B]{View: NewView(w, a, b)}
	copy(v.ids[:], v.View.lookupIDs(a, b))
	return v
}

func (v *View2[A, B]) Include(types ...ComponentType) *View2[A, B] {
	v.View.Include(types...)
	return v
}

func (v *View2[A, B]) Exclude(types ...ComponentType) *View2[A, B] {
	v.View.Exclude(types...)
	return v
}

func (v *View2[A, B]) Iter() *Iterator2[A, B] {
	it := &Iterator2[A, B]{Cursor: newCursor(v.View)}
	it.onAdvance = func(arch *archetype) {
		it.cache = newCache2[A, B](arch, v.ids)
	}
	return it
}

// Each calls fn for every matched entity
func (v *View2[A, B]) Each(fn func(Entity, *A, *B)) {
	it := v.Iter()
	for it.Next() {
		a, b := it.Get()
		fn(it.Entity(), a, b)
	}
}

func (v *View2[A, B]) Caches() iter.Seq[Cache2[A, B]] {
	return func(yield func(Cache2[A, B]) bool) {
		v.each(func(arch *archetype) bool {
			return yield(newCache2[A, B](arch, v.ids))
		})
	}
}

type Iterator2[A, B any] struct {
	*Cursor
	cache Cache2[A, B]
}

func (it *Iterator2[A, B]) Get() (*A, *B) {
	return it.cache.Group(it.row)
}

// View3 is a view yielding three components per entity
type View3[A, B, C any] struct {
	*View
	ids [3]ComponentID
}

// NewView3 builds a view over entities carrying A, B and C
func NewView3[A, B, C any](w *World) *View3[A, B, C] {
	a, b, c := componentType[A]{}, componentType[B]{}, componentType[C]{}
	v := &View3[A, B, C]{View: NewView(w, a, b, c)}
	copy(v.ids[:], v.View.lookupIDs(a, b, c))
	return v
}

func (v *View3[A, B, C]) Include(types ...ComponentType) *View3[A, B, C] {
	v.View.Include(types...)
	return v
}

func (v *View3[A, B, C]) Exclude(types ...ComponentType) *View3[A, B, C] {
	v.View.Exclude(types...)
	return v
}

func (v *View3[A, B, C]) Iter() *Iterator3[A, B, C] {
	it := &Iterator3[A, B, C]{Cursor: newCursor(v.View)}
	it.onAdvance = func(arch *archetype) {
		it.cache = newCache3[A, B, C](arch, v.ids)
	}
	return it
}

func (v *View3[A, B, C]) Each(fn func(Entity, *A, *B, *C)) {
	it := v.Iter()
	for it.Next() {
		a, b, c := it.Get()
		fn(it.Entity(), a, b, c)
	}
}

func (v *View3[A, B, C]) Caches() iter.Seq[Cache3[A, B, C]] {
	return func(yield func(Cache3[A, B, C]) bool) {
		v.each(func(arch *archetype) bool {
			return yield(newCache3[A, B, C](arch, v.ids))
		})
	}
}

type Iterator3[A, B, C any] struct {
	*Cursor
	cache Cache3[A, B, C]
}

func (it *Iterator3[A, B, C]) Get() (*A, *B, *C) {
	return it.cache.Group(it.row)
}
