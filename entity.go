package depot

import (
	"github.com/TheBitDrifter/depot/slotmap"
	"github.com/rotisserie/eris"
)

// Entity is a handle to one logical object in a World
//
// Handles compare equal only when slot index and generation both match, so a
// handle kept after DestroyEntity never aliases the entity reusing its slot.
type Entity = slotmap.Handle

// entityRecord locates an entity; archetype 0 means no components
type entityRecord struct {
	archetype archetypeID
	row       int
}

// Attach adds values to e, moving it to the archetype of its grown signature
func (w *World) Attach(e Entity, values ...Value) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	rec, err := w.record(e)
	if err != nil {
		return eris.Wrap(err, "failed to attach components")
	}
	if len(values) == 0 {
		return nil
	}
	ids, add, err := w.resolve(e, values)
	if err != nil {
		return eris.Wrap(err, "failed to attach components")
	}
	if rec.archetype != 0 {
		origin := w.archetypeFor(rec.archetype)
		for i, id := range ids {
			if origin.signature.Test(id) {
				return eris.Wrap(ComponentExistsError{Entity: e, Type: values[i].Type()}, "failed to attach components")
			}
		}
	}
	w.transition(e, rec, values, ids, add)
	return nil
}

// resolve registers the types of values and rejects duplicates among them
func (w *World) resolve(e Entity, values []Value) ([]ComponentID, Signature, error) {
	var add Signature
	ids := make([]ComponentID, len(values))
	for i, v := range values {
		id, err := w.registry.ID(v)
		if err != nil {
			return nil, Signature{}, err
		}
		if add.Test(id) {
			return nil, Signature{}, ComponentExistsError{Entity: e, Type: v.Type()}
		}
		add.Set(id, true)
		ids[i] = id
	}
	return ids, add, nil
}

// transition moves e from its current archetype to the one for its signature
// plus add, then fills the new columns with values
func (w *World) transition(e Entity, rec *entityRecord, values []Value, ids []ComponentID, add Signature) {
	var origin *archetype
	sig := add
	if rec.archetype != 0 {
		origin = w.archetypeFor(rec.archetype)
		sig.Union(origin.signature)
	}

	dest := w.getOrCreateArchetype(sig, func(id archetypeID) *archetype {
		if origin != nil {
			return buildArchetypeWith(w.registry, id, origin, add)
		}
		return newArchetype(w.registry, id, sig)
	})

	var row int
	if origin != nil {
		row = dest.carryEntity(rec.row, e, origin)
		w.eraseRow(origin, rec.row)
	} else {
		row = dest.pushEntity(e)
	}
	for i, v := range values {
		dest.pushComponent(ids[i], v)
	}
	rec.archetype = dest.id
	rec.row = row
}

// DetachType removes the component of type ct from e
// An entity losing its last component keeps its handle but leaves every archetype.
func (w *World) DetachType(e Entity, ct ComponentType) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	rec, err := w.record(e)
	if err != nil {
		return eris.Wrap(err, "failed to detach component")
	}
	id, registered := w.registry.lookup(ct)
	if !registered || rec.archetype == 0 || !w.archetypeFor(rec.archetype).signature.Test(id) {
		return eris.Wrap(ComponentNotFoundError{Entity: e, Type: ct.Type()}, "failed to detach component")
	}

	origin := w.archetypeFor(rec.archetype)
	sig := origin.signature
	sig.Set(id, false)

	var destID archetypeID
	var row int
	if sig.Any() {
		dest := w.getOrCreateArchetype(sig, func(aid archetypeID) *archetype {
			return buildArchetypeWithout(w.registry, aid, origin, id)
		})
		row = dest.carryEntity(rec.row, e, origin)
		destID = dest.id
	}
	w.eraseRow(origin, rec.row)
	rec.archetype = destID
	rec.row = row
	return nil
}

// Detach removes e's T component
func Detach[T any](w *World, e Entity) error {
	return w.DetachType(e, componentType[T]{})
}

// Get returns a reference to e's T component
//
// The reference is valid until the next structural change of the world.
func Get[T any](w *World, e Entity) (*T, error) {
	rec, err := w.record(e)
	if err != nil {
		return nil, eris.Wrap(err, "failed to get component")
	}
	ct := componentType[T]{}
	id, registered := w.registry.lookup(ct)
	if !registered || rec.archetype == 0 || !w.archetypeFor(rec.archetype).signature.Test(id) {
		return nil, eris.Wrap(ComponentNotFoundError{Entity: e, Type: ct.Type()}, "failed to get component")
	}
	return componentAt[T](w.archetypeFor(rec.archetype), id, rec.row), nil
}

// Has reports whether e is alive and carries a T component
func Has[T any](w *World, e Entity) bool {
	return w.HasType(e, componentType[T]{})
}

// HasType reports whether e is alive and carries a component of type ct
func (w *World) HasType(e Entity, ct ComponentType) bool {
	rec, err := w.record(e)
	if err != nil || rec.archetype == 0 {
		return false
	}
	id, registered := w.registry.lookup(ct)
	return registered && w.archetypeFor(rec.archetype).signature.Test(id)
}
