// Configuration validation. A bad configuration is rejected at construction;
// once an engine exists, Record can never fail.

package clockpro

import (
	"errors"
	"fmt"

	"github.com/nobletooth/clocklab/pkg/policy"
)

var (
	ErrInvalidMaximumSize    = errors.New("maximum size must be positive")
	ErrInvalidPercentMinCold = errors.New("percent min cold must be in (0, 1]")
	ErrInvalidPercentMaxCold = errors.New("percent max cold must be in (0, 1] and not below percent min cold")
	ErrInvalidLowerBoundCold = errors.New("lower bound cold must be at least 1")
)

// validateOptions fails fast on every configuration error the engines cannot
// recover from.
func validateOptions(opts policy.Options) error {
	if opts.MaximumSize <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidMaximumSize, opts.MaximumSize)
	}
	if opts.PercentMinCold <= 0 || opts.PercentMinCold > 1 {
		return fmt.Errorf("%w, got %v", ErrInvalidPercentMinCold, opts.PercentMinCold)
	}
	if opts.PercentMaxCold > 1 || opts.PercentMaxCold < opts.PercentMinCold {
		return fmt.Errorf("%w, got %v", ErrInvalidPercentMaxCold, opts.PercentMaxCold)
	}
	if opts.LowerBoundCold < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidLowerBoundCold, opts.LowerBoundCold)
	}
	return nil
}
