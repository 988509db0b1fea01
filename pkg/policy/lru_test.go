package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_RecordAndEvict(t *testing.T) {
	p, err := New("lru", DefaultOptions(2))
	require.NoError(t, err)

	p.Record(1)
	p.Record(2)
	p.Record(1) // Refreshes key 1, making key 2 the LRU victim.
	p.Record(3) // Evicts key 2.

	snapshot := p.Stats()
	assert.EqualValues(t, 4, snapshot.Operations)
	assert.EqualValues(t, 1, snapshot.Hits)
	assert.EqualValues(t, 3, snapshot.Misses)
	assert.EqualValues(t, 1, snapshot.Evictions)

	p.Record(2) // Key 2 was evicted, so this must miss again.
	assert.EqualValues(t, 4, p.Stats().Misses)
	p.Finished()
}
