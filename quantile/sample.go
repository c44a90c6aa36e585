package quantile

// sample is the stream-level record consumed and produced by the
// compressor and the merge algorithm. It is never exposed to callers;
// within the tree the same information lives in a Checkpoint.
type sample[T any] struct {
	value T
	g     uint64
	delta uint64
}

// budgetOK reports whether s respects the per-sample ceiling g+delta <= budget.
func (s sample[T]) budgetOK(budget uint64) bool {
	return s.g+s.delta <= budget
}
