// The statistics sink. Every policy owns one Stats value and records exactly
// one operation per access, exactly one of hit/miss per access, and at most
// one eviction per access. Counters are mirrored to prometheus so long
// simulation runs can be watched from the outside.

package policy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clocklab_operations_total",
		Help: "The total number of recorded accesses per policy.",
	}, []string{"policy"})
	hitsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clocklab_hits_total",
		Help: "The total number of cache hits per policy.",
	}, []string{"policy"})
	missesMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clocklab_misses_total",
		Help: "The total number of cache misses per policy.",
	}, []string{"policy"})
	evictionsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clocklab_evictions_total",
		Help: "The total number of eviction passes per policy.",
	}, []string{"policy"})
)

// Stats accumulates the counters of a single policy instance. It is not safe
// for concurrent use; the simulator drives each policy from one goroutine.
type Stats struct {
	policy                              string
	operations, hits, misses, evictions int64
	// Pre-resolved prometheus counters so the hot path doesn't pay for label
	// lookups on every access.
	operationsMetric, hitsMetric, missesMetric, evictionsMetric prometheus.Counter
}

// NewStats returns an empty sink whose prometheus counters carry the given policy label.
func NewStats(policy string) *Stats {
	return &Stats{
		policy:           policy,
		operationsMetric: operationsMetric.WithLabelValues(policy),
		hitsMetric:       hitsMetric.WithLabelValues(policy),
		missesMetric:     missesMetric.WithLabelValues(policy),
		evictionsMetric:  evictionsMetric.WithLabelValues(policy),
	}
}

// RecordOperation counts one access.
func (s *Stats) RecordOperation() {
	s.operations++
	s.operationsMetric.Inc()
}

// RecordHit counts an access that found its key resident.
func (s *Stats) RecordHit() {
	s.hits++
	s.hitsMetric.Inc()
}

// RecordMiss counts an access that did not find its key resident.
func (s *Stats) RecordMiss() {
	s.misses++
	s.missesMetric.Inc()
}

// RecordEviction counts one eviction pass, regardless of how many entries it moved.
func (s *Stats) RecordEviction() {
	s.evictions++
	s.evictionsMetric.Inc()
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Policy:     s.policy,
		Operations: s.operations,
		Hits:       s.hits,
		Misses:     s.misses,
		Evictions:  s.evictions,
	}
}

// Snapshot is a point-in-time copy of a policy's counters.
type Snapshot struct {
	Policy                              string
	Operations, Hits, Misses, Evictions int64
}

// HitRatio returns hits over recorded accesses, or 0 before the first access.
func (s Snapshot) HitRatio() float64 {
	if s.Hits+s.Misses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Hits+s.Misses)
}
