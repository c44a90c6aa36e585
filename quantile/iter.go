package quantile

import "golang.org/x/exp/constraints"

// frame is a (node, position) pair on the traversal stack: position is
// the index of the next checkpoint to emit from node.
type frame[T constraints.Ordered] struct {
	node treeNode[T]
	pos  int
}

// treeIterator walks a tree in order using a depth-sized stack,
// descending to the leftmost leaf before emitting anything. It is
// read-only: it never mutates the nodes it walks.
//
// The same traversal powers both iterators spec.md §4.8 calls for. Go
// has no move-only ownership to distinguish "by reference" from "by
// value": the by-reference form (samplesTree.iter) walks a tree the
// caller still owns, while the by-value form (samplesTree.drain) walks
// a tree the caller is discarding and resets it afterward so it cannot
// be reused. Both build on this same stack-based walk, so they are
// trivially guaranteed to agree on sample order.
type treeIterator[T constraints.Ordered] struct {
	stack []frame[T]
}

func newTreeIterator[T constraints.Ordered](root treeNode[T]) *treeIterator[T] {
	it := &treeIterator[T]{}
	it.descend(root)
	return it
}

func (it *treeIterator[T]) descend(node treeNode[T]) {
	for node != nil {
		it.stack = append(it.stack, frame[T]{node: node, pos: 0})
		child, ok := node.childAt(0)
		if !ok {
			return
		}
		node = child
	}
}

// next returns the next sample in order, or false when exhausted.
func (it *treeIterator[T]) next() (sample[T], bool) {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.pos < top.node.numCheckpoints() {
			cp := top.node.checkpointAt(top.pos)
			top.pos++
			if child, ok := top.node.childAt(top.pos); ok {
				it.descend(child)
			}
			return cp.asSample(), true
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	var zero sample[T]
	return zero, false
}

// sampleSource yields samples in ascending order. It is implemented by
// treeIterator and by plain in-memory slices, so a mergeCursor can be
// fed from either a live tree walk or a pre-collected sequence.
type sampleSource[T constraints.Ordered] interface {
	next() (sample[T], bool)
}
