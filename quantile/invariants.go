//go:build !quantiledebug

package quantile

import "golang.org/x/exp/constraints"

// checkInvariants is a no-op in release builds. Build with -tags
// quantiledebug to enable the walk-the-tree assertions (see
// invariants_debug.go), mirroring debug_assert! being compiled out of
// release builds.
func checkInvariants[T constraints.Ordered](tree *samplesTree[T], budget uint64) {}
