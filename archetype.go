package depot

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

type archetypeID uint32

// archetype stores every entity sharing one exact signature
//
// Row i of the entity column and of every component column describes the same
// entity. Archetypes are owned by their world's arena and are never freed or
// moved once created.
type archetype struct {
	id        archetypeID
	signature Signature
	entities  []Entity
	columns   []column
	index     *intmap.Map[ComponentID, int]
}

func newArchetype(reg *Registry, id archetypeID, sig Signature) *archetype {
	ids := sig.Slice()
	arch := &archetype{
		id:        id,
		signature: sig,
		columns:   make([]column, len(ids)),
		index:     intmap.New[ComponentID, int](len(ids)),
	}
	for i, cid := range ids {
		arch.columns[i] = reg.newColumn(cid)
		arch.index.Put(cid, i)
	}
	return arch
}

// buildArchetypeWith shapes an archetype for from's signature plus add
func buildArchetypeWith(reg *Registry, id archetypeID, from *archetype, add Signature) *archetype {
	sig := from.signature
	sig.Union(add)
	return newArchetype(reg, id, sig)
}

// buildArchetypeWithout shapes an archetype for from's signature minus dropped
func buildArchetypeWithout(reg *Registry, id archetypeID, from *archetype, dropped ComponentID) *archetype {
	sig := from.signature
	sig.Set(dropped, false)
	return newArchetype(reg, id, sig)
}

func (a *archetype) len() int {
	return len(a.entities)
}

func (a *archetype) empty() bool {
	return len(a.entities) == 0
}

func (a *archetype) column(id ComponentID) (column, bool) {
	i, ok := a.index.Get(id)
	if !ok {
		return nil, false
	}
	return a.columns[i], true
}

// pushEntity opens a new row without component data
func (a *archetype) pushEntity(e Entity) int {
	a.entities = append(a.entities, e)
	return len(a.entities) - 1
}

// pushComponent fills id's column for the most recently opened row
func (a *archetype) pushComponent(id ComponentID, v Value) {
	col, ok := a.column(id)
	if !ok {
		panic(fmt.Sprintf("depot: component %d not in archetype %v", id, a.signature))
	}
	if col.len() != len(a.entities)-1 {
		panic(fmt.Sprintf("depot: component %d pushed twice for row %d", id, len(a.entities)-1))
	}
	v.push(col)
}

// carryEntity copies every column shared with src at srcRow into a new row
// Columns only present here are left for pushComponent.
func (a *archetype) carryEntity(srcRow int, e Entity, src *archetype) int {
	row := a.pushEntity(e)
	src.index.ForEach(func(id ComponentID, i int) bool {
		if dst, ok := a.column(id); ok {
			dst.carry(src.columns[i], srcRow)
		}
		return true
	})
	return row
}

// copyRow duplicates row for e inside this archetype
func (a *archetype) copyRow(row int, e Entity) int {
	return a.carryEntity(row, e, a)
}

// erase swap-removes row from every column
// When another entity is moved into row it is returned with ok set.
func (a *archetype) erase(row int) (moved Entity, ok bool) {
	last := len(a.entities) - 1
	for _, col := range a.columns {
		col.swapRemove(row)
	}
	a.entities[row] = a.entities[last]
	a.entities[last] = Entity{}
	a.entities = a.entities[:last]
	if row == last {
		return Entity{}, false
	}
	return a.entities[row], true
}

func (a *archetype) clone() *archetype {
	out := &archetype{
		id:        a.id,
		signature: a.signature,
		entities:  make([]Entity, len(a.entities)),
		columns:   make([]column, len(a.columns)),
		index:     intmap.New[ComponentID, int](len(a.columns)),
	}
	copy(out.entities, a.entities)
	for i, col := range a.columns {
		out.columns[i] = col.clone()
	}
	a.index.ForEach(func(id ComponentID, i int) bool {
		out.index.Put(id, i)
		return true
	})
	return out
}

// componentAt returns T's value at row; T must be registered under id and present
func componentAt[T any](a *archetype, id ComponentID, row int) *T {
	col, ok := a.column(id)
	if !ok {
		panic(fmt.Sprintf("depot: component %d not in archetype %v", id, a.signature))
	}
	return col.(*typedColumn[T]).at(row)
}
