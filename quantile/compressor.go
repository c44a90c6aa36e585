package quantile

import "golang.org/x/exp/constraints"

// samplesCompressor consumes a strictly-ordered stream of samples and
// emits a coarser ordered stream that preserves the per-sample
// invariant g+delta <= budget, by merging runs of consecutive samples
// while a one-sample lookahead (blockTail) still fits the budget.
type samplesCompressor[T constraints.Ordered] struct {
	budget    uint64
	blockTail *sample[T]
	output    samplesTree[T]
}

func newSamplesCompressor[T constraints.Ordered](budget uint64) *samplesCompressor[T] {
	return &samplesCompressor[T]{budget: budget, output: newSamplesTree[T]()}
}

// push feeds the next sample from the input stream.
func (c *samplesCompressor[T]) push(s sample[T]) {
	if c.blockTail != nil {
		t := *c.blockTail
		if t.g+s.g+s.delta <= c.budget {
			s.g += t.g
			c.blockTail = &s
			return
		}
		c.commit(t)
		c.blockTail = &s
		return
	}

	if c.output.numCheckpoints == 0 {
		// Commits immediately: protects the stream minimum from ever
		// being merged into a later block.
		c.commit(s)
		return
	}

	c.blockTail = &s
}

func (c *samplesCompressor[T]) commit(s sample[T]) {
	c.output.insertMaxCheckpoint(checkpointFromSample[T](s))
}

// finish commits any pending block and returns the compressed tree.
func (c *samplesCompressor[T]) finish() samplesTree[T] {
	if c.blockTail != nil {
		c.commit(*c.blockTail)
		c.blockTail = nil
	}
	return c.output
}
