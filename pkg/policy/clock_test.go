package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_SecondChance(t *testing.T) {
	p, err := New("clock", DefaultOptions(2))
	require.NoError(t, err)

	p.Record(1)
	p.Record(2)
	p.Record(1) // Key 1 earns its second chance.
	p.Record(3) // The hand spares referenced key 1 and evicts key 2.

	snapshot := p.Stats()
	assert.EqualValues(t, 1, snapshot.Hits)
	assert.EqualValues(t, 3, snapshot.Misses)
	assert.EqualValues(t, 1, snapshot.Evictions)

	p.Record(1) // Key 1 must have survived the eviction.
	assert.EqualValues(t, 2, p.Stats().Hits)
	p.Record(2) // Key 2 did not.
	assert.EqualValues(t, 4, p.Stats().Misses)
	p.Finished()
}

func TestClock_FillWithoutEviction(t *testing.T) {
	p, err := New("clock", DefaultOptions(8))
	require.NoError(t, err)
	for key := range uint64(8) {
		p.Record(key)
	}
	snapshot := p.Stats()
	assert.EqualValues(t, 8, snapshot.Misses)
	assert.EqualValues(t, 0, snapshot.Evictions, "Filling an empty cache must not evict")
}
