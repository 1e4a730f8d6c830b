package domain

// Carousel is an ordered sequence with a rotating cursor. The front item is
// the "current" one; PopPush dequeues it and enqueues it at the back.
type Carousel[T any] struct {
	items []T
}

// NewCarousel creates a carousel holding the given items in order.
func NewCarousel[T any](items []T) *Carousel[T] {
	c := &Carousel[T]{items: make([]T, len(items))}
	copy(c.items, items)
	return c
}

// Len returns the number of items in the carousel.
func (c *Carousel[T]) Len() int {
	return len(c.items)
}

// Front returns the item at the cursor.
func (c *Carousel[T]) Front() T {
	return c.items[0]
}

// PopPush rotates the carousel by one position and returns the item that was
// at the front.
func (c *Carousel[T]) PopPush() T {
	front := c.items[0]
	c.items = append(c.items[1:], front)
	return front
}

// Add appends an item at the back.
func (c *Carousel[T]) Add(item T) {
	c.items = append(c.items, item)
}

// Remove deletes every item matching the predicate, preserving the relative
// order of the remaining items. It reports whether anything was removed.
func (c *Carousel[T]) Remove(match func(T) bool) bool {
	kept := c.items[:0]
	for _, item := range c.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(c.items)
	c.items = kept
	return removed
}

// Items returns a snapshot of the items in carousel order.
func (c *Carousel[T]) Items() []T {
	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}
