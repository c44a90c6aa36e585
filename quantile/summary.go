package quantile

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Summary is a space-efficient, mergeable approximate-quantile sketch
// over a totally-ordered type T. For any stream of N inserted values,
// Query(q) returns a value whose true rank lies within floor(eps*N) of
// the target rank, using memory sublinear in N.
//
// A Summary has no internal synchronisation: it is safe to drive from
// a single goroutine at a time. Concurrency is achieved by
// accumulating into independent Summary instances in parallel and
// merging pairwise at aggregation points.
type Summary[T constraints.Ordered] struct {
	tree             samplesTree[T]
	maxExpectedError float64
	maxSamples       uint64
	length           uint64
	compressions     uint64
}

// New constructs an empty Summary with the given relative error bound,
// which must lie in (0, 0.5).
func New[T constraints.Ordered](epsilon float64) (*Summary[T], error) {
	if !(epsilon > 0 && epsilon < 0.5) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidEpsilon, epsilon)
	}
	return &Summary[T]{
		tree:             newSamplesTree[T](),
		maxExpectedError: epsilon,
		maxSamples:       uint64(math.Ceil(5 / epsilon)),
	}, nil
}

// Len returns the total number of values ever inserted, including
// those folded in through Merge.
func (s *Summary[T]) Len() uint64 { return s.length }

// NumRetainedCheckpoints returns the number of checkpoints currently
// held by the summary (tree body plus the tracked maximum). It is a
// read-only diagnostic, akin to a state snapshot accessor, useful for
// asserting the memory-bound and compression-frequency properties of
// this data structure; it carries no semantic weight for querying.
func (s *Summary[T]) NumRetainedCheckpoints() uint64 { return s.tree.numCheckpoints }

// BulkCompressionCount returns how many times this summary has run a
// bulk compression pass, another read-only diagnostic in the same
// spirit as NumRetainedCheckpoints.
func (s *Summary[T]) BulkCompressionCount() uint64 { return s.compressions }

// MaxExpectedError returns the epsilon this Summary was constructed
// with.
func (s *Summary[T]) MaxExpectedError() float64 { return s.maxExpectedError }

// gapBudget is the per-sample g+delta ceiling at the current length:
// floor(2*epsilon*len).
func (s *Summary[T]) gapBudget() uint64 {
	return uint64(math.Floor(2 * s.maxExpectedError * float64(s.length)))
}

// InsertOne records a single stream value, triggering bulk compression
// whenever the checkpoint count exceeds the soft ceiling.
func (s *Summary[T]) InsertOne(v T) {
	s.length++
	budget := s.gapBudget()
	s.tree.recordSample(v, budget)
	if s.tree.numCheckpoints > s.maxSamples {
		s.bulkCompress()
	}
	checkInvariants(&s.tree, budget)
}

// bulkCompress rewrites the tree through a fresh SamplesCompressor,
// discarding the old one. It does not increase num_checkpoints and
// preserves the error bound for every quantile.
func (s *Summary[T]) bulkCompress() {
	s.compressions++
	budget := s.gapBudget()
	old := s.tree.drain()
	compressor := newSamplesCompressor[T](budget)
	for _, smp := range old {
		compressor.push(smp)
	}
	s.tree = compressor.finish()
}

// Merge folds other into s. other must have been built with an error
// bound no looser than s's (other's epsilon <= s's epsilon); otherwise
// Merge fails with ErrMergeErrorTolerance and leaves both summaries
// untouched. On success, other is consumed: the caller must not reuse
// it afterward.
func (s *Summary[T]) Merge(other *Summary[T]) error {
	if other.maxExpectedError > s.maxExpectedError {
		return fmt.Errorf("%w: other=%v, self=%v", ErrMergeErrorTolerance, other.maxExpectedError, s.maxExpectedError)
	}

	s.length += other.length
	budget := s.gapBudget()
	compressor := newSamplesCompressor[T](budget)

	selfSrc := &sliceSource[T]{items: s.tree.drain()}
	otherSrc := &sliceSource[T]{items: other.tree.drain()}
	selfCursor := newMergeCursor[T](selfSrc)
	otherCursor := newMergeCursor[T](otherSrc)

	for {
		sp := selfCursor.peek()
		op := otherCursor.peek()
		switch {
		case sp == nil:
			otherCursor.pushRemainingTo(compressor)
		case op == nil:
			selfCursor.pushRemainingTo(compressor)
		case sp.value < op.value:
			smp := selfCursor.popFront()
			smp.delta += otherCursor.additionalDelta()
			compressor.push(smp)
			continue
		default:
			smp := otherCursor.popFront()
			smp.delta += selfCursor.additionalDelta()
			compressor.push(smp)
			continue
		}
		break
	}

	s.tree = compressor.finish()
	other.length = 0
	checkInvariants(&s.tree, budget)
	return nil
}

// Query returns the value at quantile q (in [0, 1]), or false if the
// summary is empty. On a non-empty summary it fails with
// ErrInvalidQuantile if q is outside [0, 1]; an empty summary returns
// false and no error for any q.
func (s *Summary[T]) Query(q float64) (T, bool, error) {
	v, _, ok, err := s.QueryWithError(q)
	return v, ok, err
}

// QueryWithError returns the value at quantile q together with the
// guaranteed relative rank error, or false if the summary is empty.
func (s *Summary[T]) QueryWithError(q float64) (T, float64, bool, error) {
	var zero T
	if s.length == 0 {
		return zero, 0, false, nil
	}

	targetRank, err := QuantileToRank(q, s.length)
	if err != nil {
		return zero, 0, false, err
	}

	// Rank 1 always denotes the stream minimum. The leftmost retained
	// checkpoint may not itself carry the exact minimum value if it
	// absorbed it via micro-compression, so the true minimum is
	// answered directly from the side channel that never evicts it.
	if targetRank == 1 {
		return s.tree.extremes.min, 0, true, nil
	}

	var best *sample[T]
	var bestError uint64
	var minRank uint64
	it := s.tree.iter()
	for smp, ok := it.next(); ok; smp, ok = it.next() {
		s.accumulateCandidate(&minRank, smp, targetRank, &best, &bestError)
	}
	maxSample := s.tree.extremes.max.asSample()
	s.accumulateCandidate(&minRank, maxSample, targetRank, &best, &bestError)

	return best.value, float64(bestError) / float64(s.length), true, nil
}

func (s *Summary[T]) accumulateCandidate(minRank *uint64, smp sample[T], targetRank uint64, best **sample[T], bestError *uint64) {
	*minRank += smp.g
	maxRank := *minRank + smp.delta
	midRank := (*minRank + maxRank) / 2

	var candidateError uint64
	if targetRank > midRank {
		candidateError = targetRank - *minRank
	} else {
		candidateError = maxRank - targetRank
	}

	if *best == nil || candidateError < *bestError {
		value := smp
		*best = &value
		*bestError = candidateError
	}
}
