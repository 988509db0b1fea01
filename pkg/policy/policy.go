// Package policy defines the key-only replacement policy abstraction used by
// the clocklab simulator, the statistics sink every policy writes to, and a
// registry that maps policy names to constructors. Policies track keys, not
// values: the simulator only cares about hit and eviction behaviour, so
// storing payloads would be wasted memory.

package policy

// KeyOnly is a page-replacement policy driven by a synchronous trace replay.
// Record is called once per access; implementations must never fail on it.
// Finished is called once after the trace ends and may run integrity checks.
type KeyOnly interface {
	// Name returns the registry name of the policy.
	Name() string
	// Record applies a single access of `key` to the policy.
	Record(key uint64)
	// Stats returns a snapshot of the counters accumulated so far.
	Stats() Snapshot
	// Finished signals the end of the trace.
	Finished()
}

// Options carries the configuration shared by all policies. It is read once
// at construction; policies that don't use a field ignore it.
type Options struct {
	MaximumSize    int     // Total resident capacity in entries.
	PercentMinCold float64 // Lower bound of the cold resident share, in (0, 1].
	PercentMaxCold float64 // Upper bound of the cold resident share, in (0, 1].
	LowerBoundCold int     // Absolute floor for the minimum cold size, >= 1.
	// NonResidentMultiplier is recognised but currently unused; the ghost list
	// is capped at MaximumSize. Reserved for future tuning.
	NonResidentMultiplier float64
}

// DefaultOptions returns the configuration used when a flag is left unset.
func DefaultOptions(maximumSize int) Options {
	return Options{
		MaximumSize:           maximumSize,
		PercentMinCold:        0.01,
		PercentMaxCold:        0.99,
		LowerBoundCold:        2,
		NonResidentMultiplier: 1,
	}
}
