package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipf_Deterministic(t *testing.T) {
	first := Keys(NewZipf(42 /*seed*/, 1.25, 1, 1000), 64)
	second := Keys(NewZipf(42 /*seed*/, 1.25, 1, 1000), 64)
	assert.Equal(t, first, second, "The same seed must reproduce the same trace")
	for _, key := range first {
		assert.LessOrEqual(t, key, uint64(1000))
	}
}

func TestUniform_StaysInRange(t *testing.T) {
	for _, key := range Keys(NewUniform(7 /*seed*/, 9 /*maxKey*/), 256) {
		assert.LessOrEqual(t, key, uint64(9))
	}
}

func TestLoop_Cycles(t *testing.T) {
	keys := Keys(NewLoop(2 /*maxKey*/), 7)
	assert.Equal(t, []uint64{0, 1, 2, 0, 1, 2, 0}, keys)
}

func TestScan_NeverRepeats(t *testing.T) {
	keys := Keys(NewScan(), 5)
	assert.Equal(t, []uint64{0, 1, 2, 3, 4}, keys)
}

func TestNew(t *testing.T) {
	t.Run("known traces", func(t *testing.T) {
		for _, name := range []string{"zipf", "uniform", "loop", "scan"} {
			generator, err := New(name, 1 /*seed*/, 100 /*maxKey*/, 1.25, 1)
			require.NoError(t, err, "Trace %q should construct", name)
			assert.NotNil(t, generator)
		}
	})
	t.Run("unknown trace", func(t *testing.T) {
		_, err := New("fibonacci", 1, 100, 1.25, 1)
		assert.ErrorContains(t, err, "unknown trace")
	})
	t.Run("invalid zipf parameters", func(t *testing.T) {
		_, err := New("zipf", 1, 100, 0.5 /*s*/, 1)
		assert.Error(t, err)
	})
}
