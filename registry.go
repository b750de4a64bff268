package depot

import (
	"fmt"
	"reflect"

	"github.com/kamstrup/intmap"
)

// Registry assigns component ids
//
// Ids are handed out lazily in first-registration order, starting from zero and
// skipping ids reserved through SetID. A registry may be shared by several
// worlds; ids are then aligned across them.
type Registry struct {
	max     int
	next    ComponentID
	ids     map[reflect.Type]ComponentID
	entries *intmap.Map[ComponentID, registration]
	taken   Signature
}

type registration struct {
	typ       reflect.Type
	newColumn func() column
}

func newRegistry(max int) (*Registry, error) {
	if err := validateMaxComponents(max); err != nil {
		return nil, err
	}
	return &Registry{
		max:     max,
		ids:     make(map[reflect.Type]ComponentID),
		entries: intmap.New[ComponentID, registration](max),
	}, nil
}

func validateMaxComponents(n int) error {
	if n < 1 || n > MaxComponentLimit {
		return ConfigurationError{
			Reason: fmt.Sprintf("max component count %d outside 1..%d", n, MaxComponentLimit),
		}
	}
	return nil
}

// Max returns the configured component capacity
func (r *Registry) Max() int {
	return r.max
}

// Len returns the number of registered component types
func (r *Registry) Len() int {
	return r.entries.Len()
}

// ID returns the id of ct, registering it on first use
func (r *Registry) ID(ct ComponentType) (ComponentID, error) {
	if id, ok := r.ids[ct.Type()]; ok {
		return id, nil
	}
	for int(r.next) < r.max && r.taken.Test(r.next) {
		r.next++
	}
	if int(r.next) >= r.max {
		return 0, ConfigurationError{
			Reason: fmt.Sprintf("cannot register %v: all %d component ids in use", ct.Type(), r.max),
		}
	}
	id := r.next
	r.next++
	r.register(ct, id)
	return id, nil
}

// IDOf returns the id of T, registering it on first use
func IDOf[T any](r *Registry) (ComponentID, error) {
	return r.ID(componentType[T]{})
}

// SetID pins ct to id
//
// The override must happen before ct is first registered, unless it repeats the
// id ct already holds.
func (r *Registry) SetID(ct ComponentType, id ComponentID) error {
	if int(id) >= r.max {
		return ConfigurationError{
			Reason: fmt.Sprintf("id %d for %v exceeds max component count %d", id, ct.Type(), r.max),
		}
	}
	if current, ok := r.ids[ct.Type()]; ok {
		if current == id {
			return nil
		}
		return ConfigurationError{
			Reason: fmt.Sprintf("%v already registered with id %d", ct.Type(), current),
		}
	}
	if r.taken.Test(id) {
		owner, _ := r.entries.Get(id)
		return ConfigurationError{
			Reason: fmt.Sprintf("id %d already assigned to %v", id, owner.typ),
		}
	}
	r.register(ct, id)
	return nil
}

// SetID pins T to id, see Registry.SetID
func SetID[T any](r *Registry, id ComponentID) error {
	return r.SetID(componentType[T]{}, id)
}

// SetStorage selects the sequence backing T's columns in archetypes built afterwards
func SetStorage[T any](r *Registry, newSequence func() Sequence[T]) error {
	if newSequence == nil {
		return ConfigurationError{Reason: fmt.Sprintf("nil sequence constructor for %v", reflect.TypeFor[T]())}
	}
	id, err := IDOf[T](r)
	if err != nil {
		return err
	}
	entry, _ := r.entries.Get(id)
	entry.newColumn = func() column {
		return newTypedColumn[T](newSequence())
	}
	r.entries.Put(id, entry)
	return nil
}

// TypeOf returns the component type registered under id
func (r *Registry) TypeOf(id ComponentID) (reflect.Type, bool) {
	entry, ok := r.entries.Get(id)
	if !ok {
		return nil, false
	}
	return entry.typ, true
}

// Signature returns the signature of types, registering them as needed
func (r *Registry) Signature(types ...ComponentType) (Signature, error) {
	var sig Signature
	for _, ct := range types {
		id, err := r.ID(ct)
		if err != nil {
			return Signature{}, err
		}
		sig.Set(id, true)
	}
	return sig, nil
}

func (r *Registry) register(ct ComponentType, id ComponentID) {
	r.ids[ct.Type()] = id
	r.entries.Put(id, registration{typ: ct.Type(), newColumn: ct.defaultColumn})
	r.taken.Set(id, true)
}

// lookup resolves ct without registering it
func (r *Registry) lookup(ct ComponentType) (ComponentID, bool) {
	id, ok := r.ids[ct.Type()]
	return id, ok
}

// lookupSignature resolves types without registering them
// complete is false if any type is unknown to the registry.
func (r *Registry) lookupSignature(types ...ComponentType) (sig Signature, complete bool) {
	complete = true
	for _, ct := range types {
		id, ok := r.lookup(ct)
		if !ok {
			complete = false
			continue
		}
		sig.Set(id, true)
	}
	return sig, complete
}

func (r *Registry) newColumn(id ComponentID) column {
	entry, ok := r.entries.Get(id)
	if !ok {
		panic(fmt.Sprintf("depot: component id %d is not registered", id))
	}
	return entry.newColumn()
}
