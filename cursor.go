package depot

import (
	"iter"
)

// Cursor walks the entities of a view archetype by archetype
//
// The outer position indexes the view's matched archetypes, the inner position
// the rows of the current one. The world stays locked from the first Next until
// the cursor is exhausted or Reset, after which the cursor can be reused.
type Cursor struct {
	world   *World
	matched []archetypeID

	// Current iteration state
	current   *archetype
	archIndex int
	row       int
	remaining int
	started   bool
	holdsLock bool
	err       error
	onAdvance func(*archetype)
}

func newCursor(v *View) *Cursor {
	return &Cursor{
		world:   v.world,
		matched: v.matched,
	}
}

// Next moves to the next entity, reporting false once every matched archetype is done
func (c *Cursor) Next() bool {
	if !c.started {
		c.start()
	} else {
		c.row++
	}
	for c.archIndex < len(c.matched) {
		if c.row < c.remaining {
			return true
		}
		c.archIndex++
		c.row = 0
		c.load()
	}
	c.Reset()
	return false
}

func (c *Cursor) start() {
	c.started = true
	c.world.Lock()
	c.holdsLock = true
	c.archIndex = 0
	c.row = 0
	c.load()
}

func (c *Cursor) load() {
	if c.archIndex >= len(c.matched) {
		c.current = nil
		c.remaining = 0
		return
	}
	c.current = c.world.archetypeFor(c.matched[c.archIndex])
	c.remaining = c.current.len()
	if c.onAdvance != nil {
		c.onAdvance(c.current)
	}
}

// Reset rewinds the cursor and releases its lock on the world
func (c *Cursor) Reset() {
	if c.holdsLock {
		c.holdsLock = false
		if err := c.world.Unlock(); err != nil {
			c.err = err
			Config.logger.Warn("queued operations failed", "err", err)
		}
	}
	c.current = nil
	c.archIndex = 0
	c.row = 0
	c.remaining = 0
	c.started = false
}

// Err returns the error of the queued operations applied when the cursor last released its lock
func (c *Cursor) Err() error {
	return c.err
}

// Entity returns the entity at the cursor position
func (c *Cursor) Entity() Entity {
	return c.current.entities[c.row]
}

// Row returns the row of the current entity inside its archetype
func (c *Cursor) Row() int {
	return c.row
}

// RemainingInArchetype returns how many rows of the current archetype follow this one
func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.row - 1
}

// TotalMatched returns the number of entities the cursor would visit
func (c *Cursor) TotalMatched() int {
	total := 0
	for _, id := range c.matched {
		total += c.world.archetypeFor(id).len()
	}
	return total
}

// Entities yields the remaining entities of a fresh cursor pass
func (c *Cursor) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for c.Next() {
			if !yield(c.Entity()) {
				c.Reset()
				return
			}
		}
	}
}
