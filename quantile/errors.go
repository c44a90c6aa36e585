package quantile

import "errors"

// Error taxonomy for the public API. Each is a programmer-facing error:
// no recovery is attempted internally, the caller decides what to do.
var (
	// ErrInvalidEpsilon is returned by New when epsilon is outside (0, 0.5).
	ErrInvalidEpsilon = errors.New("quantile: epsilon must be in (0, 0.5)")

	// ErrInvalidQuantile is returned by QuantileToRank, and by
	// Query/QueryWithError on a non-empty summary, when q is outside [0, 1].
	ErrInvalidQuantile = errors.New("quantile: quantile must be in [0, 1]")

	// ErrInvalidRank is returned by RankToQuantile when rank is outside [1, n].
	ErrInvalidRank = errors.New("quantile: rank out of range")

	// ErrMergeErrorTolerance is returned by Merge when the incoming summary
	// was built with a looser error bound than the receiver.
	ErrMergeErrorTolerance = errors.New("quantile: incoming summary has a looser error bound")
)
