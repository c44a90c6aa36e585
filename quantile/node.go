package quantile

import "golang.org/x/exp/constraints"

// recordOutcome is the result of TreeNode.recordSample: either the
// value was absorbed in place (micro-compression), or a new checkpoint
// was inserted — possibly splitting the node, described by insert.
type recordOutcome[T constraints.Ordered] struct {
	updatedInPlace bool
	insert         insertOutcome[T]
}

// insertOutcome is the result of inserting a checkpoint into a node:
// either it fit (split == false), or the node split and (median,
// right) must be placed in the parent (or promoted to a new root).
type insertOutcome[T constraints.Ordered] struct {
	split  bool
	median Checkpoint[T]
	right  treeNode[T]
}

// treeNode is a B-tree node: a Leaf or a Trunk. Both hold a
// checkpointArray; trunks additionally own child nodes.
type treeNode[T constraints.Ordered] interface {
	// recordSample inserts v, threading the ancestor-supplied
	// following reference down the descent so a leaf can
	// micro-compress into a neighbour that lives above it.
	recordSample(v T, budget uint64, following *Checkpoint[T]) recordOutcome[T]

	// insertMaxCheckpoint inserts cp, known to exceed every
	// checkpoint already stored below this node.
	insertMaxCheckpoint(cp Checkpoint[T]) insertOutcome[T]

	// numCheckpoints and checkpointAt expose read-only access for
	// in-order traversal and invariant checking.
	numCheckpoints() int
	checkpointAt(i int) *Checkpoint[T]

	// childAt returns the child at i and true, or the zero value and
	// false when this node is a leaf or i is out of range.
	childAt(i int) (treeNode[T], bool)
}

// leafNode carries only a checkpoint array.
type leafNode[T constraints.Ordered] struct {
	checkpoints checkpointArray[T]
}

func newLeafNode[T constraints.Ordered]() *leafNode[T] {
	return &leafNode[T]{checkpoints: newCheckpointArray[T]()}
}

func (l *leafNode[T]) numCheckpoints() int { return l.checkpoints.len() }

func (l *leafNode[T]) checkpointAt(i int) *Checkpoint[T] { return l.checkpoints.at(i) }

func (l *leafNode[T]) childAt(int) (treeNode[T], bool) { return nil, false }

func (l *leafNode[T]) recordSample(v T, budget uint64, following *Checkpoint[T]) recordOutcome[T] {
	pos, neighbour := l.checkpoints.findInsertionPos(v, following)
	if neighbour.canGrow(budget) {
		neighbour.recordBefore()
		return recordOutcome[T]{updatedInPlace: true}
	}
	cp := newPrecedingCheckpoint(v, neighbour)
	return recordOutcome[T]{insert: l.insertAt(cp, pos)}
}

func (l *leafNode[T]) insertAt(cp Checkpoint[T], pos int) insertOutcome[T] {
	split := l.checkpoints.insertCheckpoint(cp, pos)
	if split.done {
		return insertOutcome[T]{}
	}
	right := &leafNode[T]{checkpoints: split.right}
	return insertOutcome[T]{split: true, median: split.median, right: right}
}

func (l *leafNode[T]) insertMaxCheckpoint(cp Checkpoint[T]) insertOutcome[T] {
	return l.insertAt(cp, l.checkpoints.len())
}

// trunkNode carries a checkpoint array of length m plus m+1 children.
// Checkpoints in children[i] compare strictly less than checkpoints[i],
// which compare strictly less than checkpoints in children[i+1].
type trunkNode[T constraints.Ordered] struct {
	checkpoints checkpointArray[T]
	children    []treeNode[T]
}

func (t *trunkNode[T]) numCheckpoints() int { return t.checkpoints.len() }

func (t *trunkNode[T]) checkpointAt(i int) *Checkpoint[T] { return t.checkpoints.at(i) }

func (t *trunkNode[T]) childAt(i int) (treeNode[T], bool) {
	if i < 0 || i >= len(t.children) {
		return nil, false
	}
	return t.children[i], true
}

func (t *trunkNode[T]) recordSample(v T, budget uint64, following *Checkpoint[T]) recordOutcome[T] {
	pos, nextFollowing := t.checkpoints.findInsertionPos(v, following)
	childOutcome := t.children[pos].recordSample(v, budget, nextFollowing)
	if childOutcome.updatedInPlace || !childOutcome.insert.split {
		return childOutcome
	}
	return recordOutcome[T]{insert: t.insertChild(childOutcome.insert.median, childOutcome.insert.right, pos)}
}

func (t *trunkNode[T]) insertMaxCheckpoint(cp Checkpoint[T]) insertOutcome[T] {
	last := len(t.children) - 1
	childOutcome := t.children[last].insertMaxCheckpoint(cp)
	if !childOutcome.split {
		return insertOutcome[T]{}
	}
	return t.insertChild(childOutcome.median, childOutcome.right, t.checkpoints.len())
}

// insertChild places (median, right) — promoted from a child split at
// index pos — into this trunk's checkpoint array and child slice. On
// local overflow it splits this trunk in two, moving children in
// lockstep with the checkpoints that divide them.
func (t *trunkNode[T]) insertChild(median Checkpoint[T], right treeNode[T], pos int) insertOutcome[T] {
	split := t.checkpoints.insertCheckpoint(median, pos)
	if split.done {
		t.children = insertChildAt(t.children, pos+1, right)
		return insertOutcome[T]{}
	}

	medPos := len(t.children) / 2
	var rightChildren []treeNode[T]
	if pos < medPos {
		rightChildren = append([]treeNode[T]{}, t.children[medPos:]...)
		t.children = append([]treeNode[T]{}, t.children[:medPos]...)
		t.children = insertChildAt(t.children, pos+1, right)
	} else {
		rightChildren = append([]treeNode[T]{}, t.children[medPos+1:]...)
		t.children = append([]treeNode[T]{}, t.children[:medPos+1]...)
		rightChildren = insertChildAt(rightChildren, pos-medPos, right)
	}

	newTrunk := &trunkNode[T]{checkpoints: split.right, children: rightChildren}
	return insertOutcome[T]{split: true, median: split.median, right: newTrunk}
}

func insertChildAt[T constraints.Ordered](children []treeNode[T], pos int, child treeNode[T]) []treeNode[T] {
	children = append(children, nil)
	copy(children[pos+1:], children[pos:])
	children[pos] = child
	return children
}
