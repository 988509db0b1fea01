package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobletooth/clocklab/pkg/policy"
	"github.com/nobletooth/clocklab/pkg/trace"
	"github.com/nobletooth/clocklab/pkg/utils"
)

func TestTraceKeys(t *testing.T) {
	t.Run("synthetic loop trace", func(t *testing.T) {
		utils.SetTestFlag(t, "trace", "loop")
		utils.SetTestFlag(t, "max_key", "2")
		utils.SetTestFlag(t, "events", "7")
		keys, err := traceKeys()
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 1, 2, 0, 1, 2, 0}, keys)
	})
	t.Run("file trace without a path", func(t *testing.T) {
		utils.SetTestFlag(t, "trace", "file")
		_, err := traceKeys()
		assert.ErrorContains(t, err, "trace_file")
	})
}

func TestRunPolicies_AllRegisteredPolicies(t *testing.T) {
	keys := trace.Keys(trace.NewLoop(9 /*maxKey*/), 200)
	opts := policy.DefaultOptions(4)

	names := []string{"clockpro", "clockpro-threehand", "lru", "arc", "clock"}
	snapshots, err := runPolicies(names, opts, keys)
	require.NoError(t, err)
	require.Len(t, snapshots, len(names))
	for i, snapshot := range snapshots {
		assert.Equal(t, names[i], snapshot.Policy)
		assert.EqualValues(t, len(keys), snapshot.Operations)
		assert.EqualValues(t, snapshot.Operations, snapshot.Hits+snapshot.Misses,
			"Every access is exactly one of hit or miss")
	}
}

// TestRunPolicies_LoopScanResistance pins the motivating property: on a
// cyclic workload larger than the cache, LRU never hits while CLOCK-Pro
// keeps its warm hot set.
func TestRunPolicies_LoopScanResistance(t *testing.T) {
	keys := trace.Keys(trace.NewLoop(9 /*maxKey*/), 200)
	snapshots, err := runPolicies([]string{"clockpro", "lru"}, policy.DefaultOptions(4), keys)
	require.NoError(t, err)

	clockpro, lru := snapshots[0], snapshots[1]
	assert.Zero(t, lru.Hits, "LRU always misses on a loop larger than the cache")
	assert.Positive(t, clockpro.Hits, "CLOCK-Pro must retain its hot set through the loop")
}

func TestRunPolicies_UnknownPolicy(t *testing.T) {
	_, err := runPolicies([]string{"no-such-policy"}, policy.DefaultOptions(4), nil)
	assert.ErrorContains(t, err, "unknown policy")
}

func TestPrintReport(t *testing.T) {
	var buffer bytes.Buffer
	printReport(&buffer, []policy.Snapshot{{Policy: "clockpro", Operations: 10, Hits: 4, Misses: 6, Evictions: 2}})
	assert.Contains(t, buffer.String(), "POLICY")
	assert.Contains(t, buffer.String(), "clockpro")
	assert.Contains(t, buffer.String(), "0.4000")
}

func TestPrintAnalysis(t *testing.T) {
	var buffer bytes.Buffer
	printAnalysis(&buffer, []uint64{1, 1, 2, 3})
	assert.Contains(t, buffer.String(), "accesses: 4")
	assert.Contains(t, buffer.String(), "distinct keys (est.): 3")
}
