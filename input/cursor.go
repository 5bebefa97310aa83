package input

import "sync"

// Cursor owns the process-wide cursor lock state. It starts locked. Controllers only request changes
// through it and never assume they are its only user.
type Cursor struct {
	mu       sync.Mutex
	locked   bool
	onChange func(locked bool)
}

// NewCursor returns a locked cursor. onChange, if non-nil, is called whenever the lock state changes.
func NewCursor(onChange func(locked bool)) *Cursor {
	c := &Cursor{locked: true, onChange: onChange}
	if onChange != nil {
		onChange(true)
	}
	return c
}

// Locked returns true if the cursor is currently locked.
func (c *Cursor) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// Toggle flips the lock state and returns the new state.
func (c *Cursor) Toggle() bool {
	c.mu.Lock()
	c.locked = !c.locked
	locked, cb := c.locked, c.onChange
	c.mu.Unlock()

	if cb != nil {
		cb(locked)
	}
	return locked
}

// Request sets the lock state. Requesting the current state is a no-op.
func (c *Cursor) Request(locked bool) {
	c.mu.Lock()
	if c.locked == locked {
		c.mu.Unlock()
		return
	}
	c.locked = locked
	cb := c.onChange
	c.mu.Unlock()

	if cb != nil {
		cb(locked)
	}
}
