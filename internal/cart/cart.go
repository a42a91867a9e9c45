package cart

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidItem rejects cart mutations carrying a negative price or a
// non-positive resulting quantity.
var ErrInvalidItem = errors.New("invalid cart item")

// Cart holds the line items of one shopping session. Instances are created
// per session and owned by the caller; every operation takes the internal
// lock so a total is never observed mid-mutation.
type Cart struct {
	mu      sync.Mutex
	items   []Item
	subs    map[int]func()
	nextSub int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{subs: make(map[int]func())}
}

// AddItem appends the item, or merges quantities when an item with the same
// ID is already present.
func (c *Cart) AddItem(it Item) error {
	if it.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidItem)
	}
	if it.UnitPrice < 0 {
		return fmt.Errorf("%w: negative unit price %.2f", ErrInvalidItem, it.UnitPrice)
	}
	if it.Quantity <= 0 {
		return fmt.Errorf("%w: quantity %d", ErrInvalidItem, it.Quantity)
	}

	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].ID == it.ID {
			c.items[i].Quantity += it.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, it.clone())
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// UpdateQuantity adjusts the quantity of the item with the given ID by
// delta, clamping at zero. A resulting quantity of zero removes the item.
// An unknown ID is a no-op.
func (c *Cart) UpdateQuantity(id string, delta int) {
	c.mu.Lock()
	changed := false
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		q := c.items[i].Quantity + delta
		if q <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = q
		}
		changed = true
		break
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// RemoveItem removes the item with the given ID; unknown IDs are a no-op.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	changed := false
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			changed = true
			break
		}
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	empty := len(c.items) == 0
	c.items = nil
	c.mu.Unlock()

	if !empty {
		c.notify()
	}
}

// Total recomputes the cart total from the current item set on every call.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// ItemCount returns the summed quantity across all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Items returns a deep copy of the current line items. Mutating the cart
// afterwards does not affect the returned slice.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it.clone())
	}
	return out
}

// Subscribe registers fn to run after every cart mutation and returns an
// unsubscribe handle. Callbacks run outside the cart lock.
func (c *Cart) Subscribe(fn func()) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Cart) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
