// The adaptive controller. CLOCK-Pro steers the split between hot and cold
// resident descriptors through a single target value: a re-fault on a ghost
// widens the cold share, an expired ghost narrows it. The target never leaves
// [minCold, maxCold].

package clockpro

import (
	"github.com/nobletooth/clocklab/pkg/policy"
)

type splitController struct {
	coldTarget int // The adaptive number of resident slots reserved for cold descriptors.
	minCold    int
	maxCold    int
}

// newSplitController derives the bounds from the configured percentages.
// minCold = max(floor(maxSize * percentMinCold), lowerBoundCold), and
// maxCold is floor(maxSize * percentMaxCold) clamped into
// [minCold, maxSize - minCold]. The target starts at minCold.
func newSplitController(opts policy.Options) *splitController {
	minCold := max(int(float64(opts.MaximumSize)*opts.PercentMinCold), opts.LowerBoundCold)
	maxCold := max(min(int(float64(opts.MaximumSize)*opts.PercentMaxCold), opts.MaximumSize-minCold), minCold)
	return &splitController{coldTarget: minCold, minCold: minCold, maxCold: maxCold}
}

// adjust moves the target by delta, clamped to [minCold, maxCold].
func (s *splitController) adjust(delta int) {
	s.coldTarget = min(max(s.coldTarget+delta, s.minCold), s.maxCold)
}

// inBounds reports whether the target honours its clamp.
func (s *splitController) inBounds() bool {
	return s.coldTarget >= s.minCold && s.coldTarget <= s.maxCold
}
