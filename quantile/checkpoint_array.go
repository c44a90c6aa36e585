package quantile

import "golang.org/x/exp/constraints"

// nodeCapacity is K, the fixed capacity of a checkpoint array. It must
// be even and >= 4 so that an overflow split always yields two halves
// of exactly K/2 checkpoints each. The reference implementation uses
// 16; any even K >= 4 preserves every external contract.
const nodeCapacity = 16

// checkpointArray is a fixed-capacity, sorted-by-value buffer of
// checkpoints shared by leaves and trunks.
type checkpointArray[T constraints.Ordered] struct {
	items []Checkpoint[T]
}

func newCheckpointArray[T constraints.Ordered]() checkpointArray[T] {
	return checkpointArray[T]{items: make([]Checkpoint[T], 0, nodeCapacity)}
}

func (a *checkpointArray[T]) len() int { return len(a.items) }

func (a *checkpointArray[T]) isFull() bool { return len(a.items) >= nodeCapacity }

func (a *checkpointArray[T]) at(i int) *Checkpoint[T] { return &a.items[i] }

// findInsertionPos performs a linear scan for v, returning the index
// at which v belongs and a mutable reference to the first local
// checkpoint strictly greater than v. When v exceeds every local
// checkpoint, it returns len(items) and the caller-supplied following
// reference instead, so the neighbour may live in an ancestor.
func (a *checkpointArray[T]) findInsertionPos(v T, following *Checkpoint[T]) (int, *Checkpoint[T]) {
	for i := range a.items {
		if a.items[i].sample > v {
			return i, &a.items[i]
		}
	}
	return len(a.items), following
}

// arraySplit is the outcome of inserting into a checkpointArray:
// either the item fit (done == true) or the array split, in which case
// median and right describe the promoted checkpoint and new right half.
type arraySplit[T constraints.Ordered] struct {
	done   bool
	median Checkpoint[T]
	right  checkpointArray[T]
}

// insertCheckpoint inserts cp at position pos. If the array is not
// full, it is inserted in place. Otherwise the array splits into two
// halves of exactly K/2 items each, keyed on pos versus the midpoint:
// the three cases each choose the promoted median (either the
// pre-split item at the midpoint or the incoming checkpoint) so that
// both halves end up balanced.
func (a *checkpointArray[T]) insertCheckpoint(cp Checkpoint[T], pos int) arraySplit[T] {
	if !a.isFull() {
		a.insertAt(pos, cp)
		return arraySplit[T]{done: true}
	}

	const mid = nodeCapacity / 2
	switch {
	case pos < mid:
		right := newCheckpointArray[T]()
		right.items = append(right.items, a.items[mid:]...)
		a.items = a.items[:mid]
		median := a.items[len(a.items)-1]
		a.items = a.items[:len(a.items)-1]
		a.insertAt(pos, cp)
		return arraySplit[T]{median: median, right: right}
	case pos == mid:
		right := newCheckpointArray[T]()
		right.items = append(right.items, a.items[mid:]...)
		a.items = a.items[:mid]
		return arraySplit[T]{median: cp, right: right}
	default:
		right := newCheckpointArray[T]()
		right.items = append(right.items, a.items[mid+1:]...)
		a.items = a.items[:mid+1]
		median := a.items[len(a.items)-1]
		a.items = a.items[:len(a.items)-1]
		right.insertAt(pos-mid-1, cp)
		return arraySplit[T]{median: median, right: right}
	}
}

func (a *checkpointArray[T]) insertAt(pos int, cp Checkpoint[T]) {
	a.items = append(a.items, Checkpoint[T]{})
	copy(a.items[pos+1:], a.items[pos:])
	a.items[pos] = cp
}
