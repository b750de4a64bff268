package depot

import (
	"errors"
	"iter"

	"github.com/TheBitDrifter/depot/slotmap"
	"github.com/rotisserie/eris"
)

// World owns the archetype arena and the entity index
//
// A World is not safe for concurrent use. Views and cursors may read it while no
// structural mutation happens; iterating a cursor locks the world so mutations
// either fail with LockedWorldError or are deferred through the Enqueue methods.
type World struct {
	registry   *Registry
	archetypes *archetypes
	entities   *slotmap.Map[entityRecord]
	locks      int
	opQueue    opQueue
	callbacks  map[Entity]EntityDestroyCallback
}

// archetypes is the arena of a world; ids start at 1 and index asSlice[id-1]
type archetypes struct {
	nextID                archetypeID
	asSlice               []*archetype
	idsGroupedBySignature map[Signature]archetypeID
}

func newWorld(reg *Registry) *World {
	return &World{
		registry: reg,
		archetypes: &archetypes{
			nextID:                1,
			idsGroupedBySignature: make(map[Signature]archetypeID),
		},
		entities:  slotmap.New[entityRecord](0),
		opQueue:   newOpQueue(),
		callbacks: make(map[Entity]EntityDestroyCallback),
	}
}

// Registry returns the component registry of the world
func (w *World) Registry() *Registry {
	return w.registry
}

// NewEntity creates an entity and attaches values to it
// Without values the entity starts with an empty signature and no archetype.
func (w *World) NewEntity(values ...Value) (Entity, error) {
	if w.Locked() {
		return Entity{}, LockedWorldError{}
	}
	ids, add, err := w.resolve(Entity{}, values)
	if err != nil {
		return Entity{}, eris.Wrap(err, "failed to create entity")
	}
	e := w.entities.Push(entityRecord{})
	if len(values) == 0 {
		return e, nil
	}
	rec, _ := w.entities.Get(e)
	w.transition(e, rec, values, ids, add)
	return e, nil
}

// DestroyEntity removes e and its components
func (w *World) DestroyEntity(e Entity) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	rec, err := w.record(e)
	if err != nil {
		return eris.Wrap(err, "failed to destroy entity")
	}
	if rec.archetype != 0 {
		w.eraseRow(w.archetypeFor(rec.archetype), rec.row)
	}
	relocated, moved, err := w.entities.Erase(e)
	if err != nil {
		return eris.Wrap(err, "failed to retire entity handle")
	}
	if moved {
		Config.logger.Debug("entity index compacted", "destroyed", e, "relocated", relocated)
	}
	if callback, ok := w.callbacks[e]; ok {
		delete(w.callbacks, e)
		callback(e)
	}
	return nil
}

// CopyEntity creates a new entity carrying a copy of every component of src
func (w *World) CopyEntity(src Entity) (Entity, error) {
	if w.Locked() {
		return Entity{}, LockedWorldError{}
	}
	rec, err := w.record(src)
	if err != nil {
		return Entity{}, eris.Wrap(err, "failed to copy entity")
	}
	// Push may grow the index, so the source record is read before it
	srcArchetype, srcRow := rec.archetype, rec.row

	dst := w.entities.Push(entityRecord{})
	if srcArchetype == 0 {
		return dst, nil
	}
	arch := w.archetypeFor(srcArchetype)
	row := arch.copyRow(srcRow, dst)
	dstRec, _ := w.entities.Get(dst)
	dstRec.archetype = arch.id
	dstRec.row = row
	return dst, nil
}

// Alive reports whether e addresses a live entity
func (w *World) Alive(e Entity) bool {
	return w.entities.Contains(e)
}

// Len returns the number of live entities
func (w *World) Len() int {
	return w.entities.Len()
}

// ArchetypeCount returns the number of archetypes created so far, empty ones included
func (w *World) ArchetypeCount() int {
	return len(w.archetypes.asSlice)
}

// Entities yields every live entity in index order
func (w *World) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e := range w.entities.All() {
			if !yield(e) {
				return
			}
		}
	}
}

// Signature returns the component set currently carried by e
func (w *World) Signature(e Entity) (Signature, error) {
	rec, err := w.record(e)
	if err != nil {
		return Signature{}, err
	}
	if rec.archetype == 0 {
		return Signature{}, nil
	}
	return w.archetypeFor(rec.archetype).signature, nil
}

// SetDestroyCallback registers fn to run once e has been destroyed
func (w *World) SetDestroyCallback(e Entity, fn EntityDestroyCallback) error {
	if !w.Alive(e) {
		return InvalidHandleError{Entity: e}
	}
	if fn == nil {
		delete(w.callbacks, e)
		return nil
	}
	w.callbacks[e] = fn
	return nil
}

// Clone returns a deep copy of the world
//
// The arena and entity index are copied first; every entity is then re-linked to
// the archetype with the same signature inside the copy. Destroy callbacks,
// locks and queued operations are not carried over. The registry is shared.
func (w *World) Clone() *World {
	out := newWorld(w.registry)
	for _, arch := range w.archetypes.asSlice {
		c := arch.clone()
		out.archetypes.asSlice = append(out.archetypes.asSlice, c)
		out.archetypes.idsGroupedBySignature[c.signature] = c.id
	}
	out.archetypes.nextID = w.archetypes.nextID

	out.entities = w.entities.Clone()
	for _, rec := range out.entities.All() {
		if rec.archetype == 0 {
			continue
		}
		sig := w.archetypeFor(rec.archetype).signature
		rec.archetype = out.archetypes.idsGroupedBySignature[sig]
	}
	Config.logger.Debug("world cloned", "entities", out.Len(), "archetypes", out.ArchetypeCount())
	return out
}

// Locked reports whether at least one lock is held
func (w *World) Locked() bool {
	return w.locks > 0
}

// Lock blocks structural mutation until the matching Unlock
// Locks nest; queued operations run when the last one is released.
func (w *World) Lock() {
	w.locks++
}

// Unlock releases one lock and, once none remain, applies queued operations
// Every queued operation is attempted; failures are joined in the returned error.
func (w *World) Unlock() error {
	if w.locks == 0 {
		return nil
	}
	w.locks--
	if w.locks > 0 {
		return nil
	}
	return w.processOperationQueue()
}

func (w *World) archetypeFor(id archetypeID) *archetype {
	return w.archetypes.asSlice[id-1]
}

func (w *World) record(e Entity) (*entityRecord, error) {
	rec, err := w.entities.Get(e)
	if err != nil {
		return nil, InvalidHandleError{Entity: e}
	}
	return rec, nil
}

// eraseRow removes row from arch and patches the entity moved into it
func (w *World) eraseRow(arch *archetype, row int) {
	moved, ok := arch.erase(row)
	if !ok {
		return
	}
	rec, err := w.entities.Get(moved)
	if err != nil {
		panic(errors.Join(errors.New("depot: archetype row owned by dead entity"), err))
	}
	rec.row = row
}

// getOrCreateArchetype returns the archetype for sig, building it with build if absent
func (w *World) getOrCreateArchetype(sig Signature, build func(id archetypeID) *archetype) *archetype {
	if id, found := w.archetypes.idsGroupedBySignature[sig]; found {
		return w.archetypeFor(id)
	}
	created := build(w.archetypes.nextID)
	w.archetypes.asSlice = append(w.archetypes.asSlice, created)
	w.archetypes.idsGroupedBySignature[sig] = w.archetypes.nextID
	w.archetypes.nextID++

	Config.logger.Debug("archetype created", "id", created.id, "signature", sig.String())
	return created
}
