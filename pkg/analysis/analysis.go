// Package analysis characterises a workload before (or instead of) running a
// simulation. The analyser streams keys through a pair of bloom filters to
// estimate the distinct key count and the one-hit-wonder share without
// holding the key set in memory; both numbers bound what any replacement
// policy can achieve on the trace.

package analysis

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bloom/v3"
)

// falsePositiveRate trades filter memory against estimation accuracy; 1% is
// plenty for a report meant to be read by humans.
const falsePositiveRate = 0.01

// Analyzer accumulates workload statistics one key at a time. It is not safe
// for concurrent use.
type Analyzer struct {
	seenOnce   *bloom.BloomFilter // Keys observed at least once.
	seenTwice  *bloom.BloomFilter // Keys observed at least twice.
	operations int
	distinct   int
	repeated   int
}

// NewAnalyzer sizes the filters for the expected number of distinct keys.
func NewAnalyzer(expectedKeys uint) *Analyzer {
	if expectedKeys == 0 {
		expectedKeys = 1
	}
	return &Analyzer{
		seenOnce:  bloom.NewWithEstimates(expectedKeys, falsePositiveRate),
		seenTwice: bloom.NewWithEstimates(expectedKeys, falsePositiveRate),
	}
}

// Observe feeds one access into the analyser.
func (a *Analyzer) Observe(key uint64) {
	a.operations++
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	if !a.seenOnce.TestAndAdd(buf[:]) {
		a.distinct++
		return
	}
	if !a.seenTwice.TestAndAdd(buf[:]) {
		a.repeated++
	}
}

// Report returns the accumulated estimates.
func (a *Analyzer) Report() Report {
	return Report{
		Operations:             a.operations,
		EstimatedDistinct:      a.distinct,
		EstimatedOneHitWonders: a.distinct - a.repeated,
	}
}

// Report summarises a workload. All key counts are bloom-filter estimates
// and may undercount by the configured false positive rate.
type Report struct {
	Operations             int
	EstimatedDistinct      int
	EstimatedOneHitWonders int
}

// OneHitWonderRatio returns the share of distinct keys that were accessed
// exactly once; a high value caps the hit ratio any policy can reach.
func (r Report) OneHitWonderRatio() float64 {
	if r.EstimatedDistinct == 0 {
		return 0
	}
	return float64(r.EstimatedOneHitWonders) / float64(r.EstimatedDistinct)
}
