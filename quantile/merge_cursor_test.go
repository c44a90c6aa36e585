package quantile

import "testing"

func TestMergeCursorPeekAndPopFront(t *testing.T) {
	src := &sliceSource[int]{items: []sample[int]{
		{value: 1, g: 1, delta: 0},
		{value: 3, g: 1, delta: 0},
	}}
	c := newMergeCursor[int](src)

	if c.peek() == nil || c.peek().value != 1 {
		t.Fatalf("expected to peek value 1, got %+v", c.peek())
	}
	if c.additionalDelta() != 0 {
		t.Fatalf("expected additionalDelta=0 before popping anything, got %d", c.additionalDelta())
	}

	first := c.popFront()
	if first.value != 1 {
		t.Fatalf("got %+v, want value 1", first)
	}
	if c.peek() == nil || c.peek().value != 3 {
		t.Fatalf("expected to peek value 3 after pop, got %+v", c.peek())
	}

	// Next sample has g=1, delta=0: additionalDelta = 1+0-1 = 0.
	if got := c.additionalDelta(); got != 0 {
		t.Fatalf("got additionalDelta=%d, want 0", got)
	}

	c.popFront()
	if c.peek() != nil {
		t.Fatalf("expected exhausted cursor, got %+v", c.peek())
	}
}

func TestMergeCursorAdditionalDeltaIgnoresPoppedSample(t *testing.T) {
	src := &sliceSource[int]{items: []sample[int]{
		{value: 1, g: 2, delta: 3},
		{value: 5, g: 1, delta: 0},
	}}
	c := newMergeCursor[int](src)
	c.popFront()
	// Next sample has g=1, delta=0: additionalDelta = 1+0-1 = 0.
	if got := c.additionalDelta(); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestMergeCursorPushRemainingTo(t *testing.T) {
	src := &sliceSource[int]{items: []sample[int]{
		{value: 1, g: 1, delta: 0},
		{value: 2, g: 1, delta: 0},
		{value: 3, g: 1, delta: 0},
	}}
	c := newMergeCursor[int](src)
	compressor := newSamplesCompressor[int](1000)
	c.pushRemainingTo(compressor)
	if c.peek() != nil {
		t.Fatalf("expected cursor drained, got %+v", c.peek())
	}
	tree := compressor.finish()
	got := tree.iterAll()
	// The compressor commits the first sample on its own, then merges
	// the remaining two into one block.
	if len(got) != 2 || got[0].value != 1 || got[0].g != 1 || got[1].value != 3 || got[1].g != 2 {
		t.Fatalf("got %+v, want value=1 g=1 then merged value=3 g=2", got)
	}
}
