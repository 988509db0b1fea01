package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzer_Report(t *testing.T) {
	analyzer := NewAnalyzer(16 /*expectedKeys*/)
	for _, key := range []uint64{1, 1, 2, 3, 3, 3} {
		analyzer.Observe(key)
	}

	report := analyzer.Report()
	assert.Equal(t, 6, report.Operations)
	assert.Equal(t, 3, report.EstimatedDistinct)
	assert.Equal(t, 1, report.EstimatedOneHitWonders, "Only key 2 was accessed once")
	assert.InDelta(t, 1.0/3.0, report.OneHitWonderRatio(), 1e-9)
}

func TestAnalyzer_EmptyWorkload(t *testing.T) {
	report := NewAnalyzer(0).Report()
	assert.Zero(t, report.Operations)
	assert.Zero(t, report.OneHitWonderRatio())
}

func TestAnalyzer_AllOneHitWonders(t *testing.T) {
	analyzer := NewAnalyzer(64)
	for key := range uint64(32) {
		analyzer.Observe(key)
	}
	report := analyzer.Report()
	assert.Equal(t, 32, report.Operations)
	assert.Equal(t, report.EstimatedDistinct, report.EstimatedOneHitWonders)
	assert.InDelta(t, 1.0, report.OneHitWonderRatio(), 1e-9)
}
