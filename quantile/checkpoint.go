package quantile

import "golang.org/x/exp/constraints"

// Checkpoint is the in-tree record: a retained stream value plus a
// (minGap, maxGap) pair bounding how many stream values it represents
// since the previous retained checkpoint. It plays the role of a
// sample with g = minGap, delta = maxGap - minGap when consumed by the
// compressor or a merge.
type Checkpoint[T constraints.Ordered] struct {
	sample T
	minGap uint64
	maxGap uint64
}

// newExactCheckpoint builds a checkpoint that represents exactly one
// stream value (the stream minimum, maximum, or a freshly promoted
// merge sample).
func newExactCheckpoint[T constraints.Ordered](v T) Checkpoint[T] {
	return Checkpoint[T]{sample: v, minGap: 1, maxGap: 1}
}

// newPrecedingCheckpoint builds a checkpoint for v, known to be
// inserted immediately before following in sorted order. It inherits
// following's upper bound: under worst-case accounting, v's true rank
// could lie anywhere within following's range.
func newPrecedingCheckpoint[T constraints.Ordered](v T, following *Checkpoint[T]) Checkpoint[T] {
	return Checkpoint[T]{sample: v, minGap: 1, maxGap: following.maxGap}
}

// checkpointFromSample rebuilds a checkpoint from its sample
// representation, used when the compressor or merge commits a sample
// to an output tree.
func checkpointFromSample[T constraints.Ordered](s sample[T]) Checkpoint[T] {
	return Checkpoint[T]{sample: s.value, minGap: s.g, maxGap: s.g + s.delta}
}

// canGrow reports whether one more stream value can be charged to this
// checkpoint without breaching budget.
func (c *Checkpoint[T]) canGrow(budget uint64) bool {
	return c.maxGap+1 <= budget
}

// recordBefore charges one more stream value to this checkpoint. Used
// for micro-compression: the incoming value is dropped by bumping the
// neighbour's gap counters instead of inserting a new checkpoint.
func (c *Checkpoint[T]) recordBefore() {
	c.minGap++
	c.maxGap++
}

// swapSample replaces the stored value, used when a new stream maximum
// is micro-compressed into the previous max checkpoint.
func (c *Checkpoint[T]) swapSample(v T) {
	c.sample = v
}

// isExact reports whether this checkpoint represents exactly one
// stream value.
func (c Checkpoint[T]) isExact() bool {
	return c.maxGap == 1
}

// asSample converts this checkpoint to its sample representation.
func (c Checkpoint[T]) asSample() sample[T] {
	return sample[T]{value: c.sample, g: c.minGap, delta: c.maxGap - c.minGap}
}
