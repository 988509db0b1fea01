package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestARC_Record(t *testing.T) {
	p, err := New("arc", DefaultOptions(2))
	require.NoError(t, err)

	p.Record(1)
	p.Record(2)
	p.Record(1)
	p.Record(3) // The cache is full; admitting key 3 displaces an entry.

	snapshot := p.Stats()
	assert.EqualValues(t, 4, snapshot.Operations)
	assert.EqualValues(t, 1, snapshot.Hits)
	assert.EqualValues(t, 3, snapshot.Misses)
	assert.EqualValues(t, 1, snapshot.Evictions)
	assert.EqualValues(t, snapshot.Operations, snapshot.Hits+snapshot.Misses)
	p.Finished()
}
