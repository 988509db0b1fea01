package clockpro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nobletooth/clocklab/pkg/policy"
)

func TestSplitController_Bounds(t *testing.T) {
	for _, testCase := range []struct {
		name                         string
		opts                         policy.Options
		wantMinCold, wantMaxCold int
	}{
		{
			name:        "percentages dominate",
			opts:        policy.Options{MaximumSize: 100, PercentMinCold: 0.1, PercentMaxCold: 0.5, LowerBoundCold: 2},
			wantMinCold: 10,
			wantMaxCold: 50,
		},
		{
			name:        "lower bound dominates",
			opts:        policy.Options{MaximumSize: 100, PercentMinCold: 0.01, PercentMaxCold: 0.5, LowerBoundCold: 5},
			wantMinCold: 5,
			wantMaxCold: 50,
		},
		{
			name:        "max cold clamped to the free half",
			opts:        policy.Options{MaximumSize: 10, PercentMinCold: 0.4, PercentMaxCold: 0.9, LowerBoundCold: 1},
			wantMinCold: 4,
			wantMaxCold: 6,
		},
		{
			name:        "tiny cache",
			opts:        policy.Options{MaximumSize: 3, PercentMinCold: 0.1, PercentMaxCold: 0.9, LowerBoundCold: 1},
			wantMinCold: 1,
			wantMaxCold: 2,
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			split := newSplitController(testCase.opts)
			assert.Equal(t, testCase.wantMinCold, split.minCold)
			assert.Equal(t, testCase.wantMaxCold, split.maxCold)
			assert.Equal(t, testCase.wantMinCold, split.coldTarget, "The target starts at minCold")
			assert.True(t, split.inBounds())
		})
	}
}

func TestSplitController_AdjustClamps(t *testing.T) {
	split := newSplitController(policy.Options{
		MaximumSize: 10, PercentMinCold: 0.2, PercentMaxCold: 0.6, LowerBoundCold: 1,
	}) // minCold=2, maxCold=6.

	split.adjust(-5)
	assert.Equal(t, 2, split.coldTarget, "The target must not drop below minCold")
	for range 20 {
		split.adjust(+1)
	}
	assert.Equal(t, 6, split.coldTarget, "The target must not exceed maxCold")
	split.adjust(-1)
	assert.Equal(t, 5, split.coldTarget)
	assert.True(t, split.inBounds())
}
