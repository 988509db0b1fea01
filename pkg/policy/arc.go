// Baseline comparator: the Adaptive Replacement Cache. ARC is the policy
// CLOCK-Pro was designed to rival, so it earns a column in every report.

package policy

import (
	"fmt"

	"github.com/hashicorp/golang-lru/arc/v2"
)

func init() {
	Register("arc", newARC)
}

type arcPolicy struct { // Implements KeyOnly.
	cache       *arc.ARCCache[uint64, struct{}]
	maximumSize int
	stats       *Stats
}

func newARC(opts Options) (KeyOnly, error) {
	if opts.MaximumSize <= 0 {
		return nil, fmt.Errorf("arc: maximum size must be positive, got %d", opts.MaximumSize)
	}
	cache, err := arc.NewARC[uint64, struct{}](opts.MaximumSize)
	if err != nil {
		return nil, fmt.Errorf("arc: %w", err)
	}
	return &arcPolicy{cache: cache, maximumSize: opts.MaximumSize, stats: NewStats("arc")}, nil
}

func (p *arcPolicy) Name() string { return "arc" }

func (p *arcPolicy) Record(key uint64) {
	p.stats.RecordOperation()
	if _, found := p.cache.Get(key); found {
		p.stats.RecordHit()
		return
	}
	p.stats.RecordMiss()
	// ARC exposes no eviction callback; a miss that lands in a full cache
	// necessarily displaced some resident entry.
	full := p.cache.Len() == p.maximumSize
	p.cache.Add(key, struct{}{})
	if full {
		p.stats.RecordEviction()
	}
}

func (p *arcPolicy) Stats() Snapshot { return p.stats.Snapshot() }

func (p *arcPolicy) Finished() {}
