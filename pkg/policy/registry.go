// The policy registry. Policies register themselves by name from their
// package init; the simulator resolves the -policies flag through New.

package policy

import (
	"fmt"
	"maps"
	"slices"

	"github.com/nobletooth/clocklab/pkg/utils"
)

// Constructor builds a fresh policy instance from the shared options.
type Constructor func(opts Options) (KeyOnly, error)

var registry = make(map[string]Constructor)

// Register adds a named policy constructor. Registering the same name twice
// is a bug in the calling package; the first registration wins.
func Register(name string, ctor Constructor) {
	if _, exists := registry[name]; exists {
		utils.RaiseInvariant("policy", "duplicate_policy",
			"A policy has been registered twice.", "name", name)
		return
	}
	registry[name] = ctor
}

// New builds the named policy or fails with the list of known names.
func New(name string, opts Options) (KeyOnly, error) {
	ctor, known := registry[name]
	if !known {
		return nil, fmt.Errorf("unknown policy %q, registered policies are %v", name, Names())
	}
	return ctor(opts)
}

// Names returns the sorted names of all registered policies.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
