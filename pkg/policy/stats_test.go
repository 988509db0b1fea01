package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Snapshot(t *testing.T) {
	stats := NewStats("test-policy")
	for range 4 {
		stats.RecordOperation()
	}
	stats.RecordHit()
	stats.RecordMiss()
	stats.RecordMiss()
	stats.RecordMiss()
	stats.RecordEviction()

	snapshot := stats.Snapshot()
	assert.Equal(t, "test-policy", snapshot.Policy)
	assert.EqualValues(t, 4, snapshot.Operations)
	assert.EqualValues(t, 1, snapshot.Hits)
	assert.EqualValues(t, 3, snapshot.Misses)
	assert.EqualValues(t, 1, snapshot.Evictions)
	assert.InDelta(t, 0.25, snapshot.HitRatio(), 1e-9)
}

func TestSnapshot_HitRatioOnEmptySink(t *testing.T) {
	assert.Zero(t, Snapshot{}.HitRatio(), "An untouched sink must not divide by zero")
}
