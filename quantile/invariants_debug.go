//go:build quantiledebug

package quantile

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// checkInvariants walks the tree after a mutating operation and
// panics if any of the following is violated: sorted order within and
// across nodes, K/2 <= occupancy <= K for every non-root node, and
// g + delta <= budget for every sample. It is compiled only with
// -tags quantiledebug, mirroring Rust's debug_assert! being stripped
// from release builds.
func checkInvariants[T constraints.Ordered](tree *samplesTree[T], budget uint64) {
	if tree.root != nil {
		assertNode(tree.root, true)
	}
	for _, s := range tree.iterAll() {
		assertf(s.budgetOK(budget), "sample %+v breaches budget %d", s, budget)
	}
}

func assertNode[T constraints.Ordered](node treeNode[T], isRoot bool) {
	n := node.numCheckpoints()
	if !isRoot {
		assertf(n >= nodeCapacity/2 && n <= nodeCapacity,
			"non-root node occupancy %d out of [%d, %d]", n, nodeCapacity/2, nodeCapacity)
	} else {
		assertf(n <= nodeCapacity, "root occupancy %d exceeds capacity %d", n, nodeCapacity)
	}

	for i := 1; i < n; i++ {
		prev := node.checkpointAt(i - 1)
		cur := node.checkpointAt(i)
		assertf(prev.sample < cur.sample, "checkpoints out of order: %v >= %v", prev.sample, cur.sample)
	}

	for i := 0; ; i++ {
		child, ok := node.childAt(i)
		if !ok {
			break
		}
		assertNode(child, false)
	}
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("quantile: invariant violation: "+format, args...))
	}
}
