// Baseline comparator: plain LRU backed by hashicorp/golang-lru. Every
// replacement study needs an LRU column to calibrate against.

package policy

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2"
)

func init() {
	Register("lru", newLRU)
}

type lruPolicy struct { // Implements KeyOnly.
	cache *lru.Cache[uint64, struct{}]
	stats *Stats
}

func newLRU(opts Options) (KeyOnly, error) {
	if opts.MaximumSize <= 0 {
		return nil, fmt.Errorf("lru: maximum size must be positive, got %d", opts.MaximumSize)
	}
	p := &lruPolicy{stats: NewStats("lru")}
	cache, err := lru.NewWithEvict(opts.MaximumSize, func(uint64, struct{}) { p.stats.RecordEviction() })
	if err != nil {
		return nil, fmt.Errorf("lru: %w", err)
	}
	p.cache = cache
	return p, nil
}

func (p *lruPolicy) Name() string { return "lru" }

func (p *lruPolicy) Record(key uint64) {
	p.stats.RecordOperation()
	if _, found := p.cache.Get(key); found {
		p.stats.RecordHit()
		return
	}
	p.stats.RecordMiss()
	p.cache.Add(key, struct{}{})
}

func (p *lruPolicy) Stats() Snapshot { return p.stats.Snapshot() }

func (p *lruPolicy) Finished() {}
