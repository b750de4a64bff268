package depot

import (
	"errors"

	"github.com/rotisserie/eris"
)

type operation struct {
	typ    operationType
	entity Entity
	values []Value
	ctype  ComponentType
}

type operationType int

const (
	opCreate operationType = iota
	opDestroy
	opAttach
	opDetach
	opCancelled
)

type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[Entity]struct{}
	pendingMods    map[Entity][]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[Entity]struct{}),
		pendingMods:    make(map[Entity][]int),
	}
}

func (q *opQueue) empty() bool {
	return len(q.createOps) == 0 &&
		len(q.componentOps) == 0 &&
		len(q.destroyOps) == 0
}

// EnqueueNewEntity creates an entity now, or once the world is unlocked
func (w *World) EnqueueNewEntity(values ...Value) error {
	if !w.Locked() {
		if _, err := w.NewEntity(values...); err != nil {
			return eris.Wrap(err, "failed to create entity directly")
		}
		return nil
	}
	w.opQueue.createOps = append(w.opQueue.createOps, operation{
		typ:    opCreate,
		values: values,
	})
	return nil
}

// EnqueueAttach attaches values to e now, or once the world is unlocked
func (w *World) EnqueueAttach(e Entity, values ...Value) error {
	if !w.Locked() {
		return w.Attach(e, values...)
	}
	if !w.Alive(e) {
		return InvalidHandleError{Entity: e}
	}
	w.opQueue.enqueueComponentOp(operation{typ: opAttach, entity: e, values: values})
	return nil
}

// EnqueueDetach removes e's ct component now, or once the world is unlocked
func (w *World) EnqueueDetach(e Entity, ct ComponentType) error {
	if !w.Locked() {
		return w.DetachType(e, ct)
	}
	if !w.Alive(e) {
		return InvalidHandleError{Entity: e}
	}
	w.opQueue.enqueueComponentOp(operation{typ: opDetach, entity: e, ctype: ct})
	return nil
}

// EnqueueDestroy destroys entities now, or once the world is unlocked
// Component operations already queued for a destroyed entity are dropped.
func (w *World) EnqueueDestroy(entities ...Entity) error {
	if !w.Locked() {
		for _, e := range entities {
			if err := w.DestroyEntity(e); err != nil {
				return err
			}
		}
		return nil
	}
	for _, e := range entities {
		if !w.Alive(e) {
			return InvalidHandleError{Entity: e}
		}
	}
	w.opQueue.enqueueDestroy(entities)
	return nil
}

func (q *opQueue) enqueueComponentOp(op operation) {
	// If entity is pending destroy, ignore component operations
	if _, isDestroyed := q.pendingDestroy[op.entity]; isDestroyed {
		return
	}
	q.pendingMods[op.entity] = append(q.pendingMods[op.entity], len(q.componentOps))
	q.componentOps = append(q.componentOps, op)
}

func (q *opQueue) enqueueDestroy(entities []Entity) {
	for _, e := range entities {
		if _, exists := q.pendingDestroy[e]; exists {
			continue
		}
		q.pendingDestroy[e] = struct{}{}

		for _, idx := range q.pendingMods[e] {
			q.componentOps[idx].typ = opCancelled
		}
		delete(q.pendingMods, e)

		q.destroyOps = append(q.destroyOps, operation{typ: opDestroy, entity: e})
	}
}

// processOperationQueue applies queued creates, then component changes, then destroys
func (w *World) processOperationQueue() error {
	if w.opQueue.empty() {
		return nil
	}
	queue := w.opQueue
	w.opQueue = newOpQueue()

	var errs []error
	for _, op := range queue.createOps {
		if _, err := w.NewEntity(op.values...); err != nil {
			errs = append(errs, eris.Wrap(err, "failed to process queued entity creation"))
		}
	}
	for _, op := range queue.componentOps {
		switch op.typ {
		case opAttach:
			if err := w.Attach(op.entity, op.values...); err != nil {
				errs = append(errs, eris.Wrap(err, "failed to add queued component"))
			}
		case opDetach:
			if err := w.DetachType(op.entity, op.ctype); err != nil {
				errs = append(errs, eris.Wrap(err, "failed to remove queued component"))
			}
		}
	}
	for _, op := range queue.destroyOps {
		if err := w.DestroyEntity(op.entity); err != nil {
			errs = append(errs, eris.Wrap(err, "failed to destroy queued entity"))
		}
	}

	Config.logger.Debug("operation queue processed",
		"creates", len(queue.createOps),
		"component_ops", len(queue.componentOps),
		"destroys", len(queue.destroyOps),
		"failures", len(errs),
	)
	return errors.Join(errs...)
}
