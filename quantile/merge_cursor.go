package quantile

import "golang.org/x/exp/constraints"

// mergeCursor is a peekable cursor over one side of a merge. It tracks
// whether it has yielded any sample yet, which controls the delta
// inflation a crossing sample from the other side must absorb.
type mergeCursor[T constraints.Ordered] struct {
	src        sampleSource[T]
	next       *sample[T]
	hasStarted bool
}

func newMergeCursor[T constraints.Ordered](src sampleSource[T]) *mergeCursor[T] {
	c := &mergeCursor[T]{src: src}
	c.advance()
	return c
}

func (c *mergeCursor[T]) advance() {
	if s, ok := c.src.next(); ok {
		c.next = &s
	} else {
		c.next = nil
	}
}

// peek returns a read-only view of the next sample, or nil when
// exhausted.
func (c *mergeCursor[T]) peek() *sample[T] {
	return c.next
}

// popFront returns the next sample and advances the cursor.
func (c *mergeCursor[T]) popFront() sample[T] {
	c.hasStarted = true
	s := *c.next
	c.advance()
	return s
}

// additionalDelta is the worst-case extra rank uncertainty a sample
// taken from the OTHER side must absorb because it interleaves between
// the last sample popped here and the next one not yet seen: once this
// side has yielded at least one sample, that amount is
// next.g + next.delta - 1. Before this side has started, no such
// interleaving is possible yet, so the inflation is zero.
func (c *mergeCursor[T]) additionalDelta() uint64 {
	if c.hasStarted && c.next != nil {
		return c.next.g + c.next.delta - 1
	}
	return 0
}

// pushRemainingTo drains this cursor's current and remaining samples
// into the compressor, used once the other side is exhausted.
func (c *mergeCursor[T]) pushRemainingTo(compressor *samplesCompressor[T]) {
	if c.next == nil {
		return
	}
	compressor.push(*c.next)
	for s, ok := c.src.next(); ok; s, ok = c.src.next() {
		compressor.push(s)
	}
	c.next = nil
}
