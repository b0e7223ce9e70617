package target

import (
	"fmt"
	"sort"
)

// Registry holds the known targets. Iteration order is the registration
// order, which is also the apply order.
type Registry struct {
	targets map[string]Target
	order   []string
}

// NewRegistry returns the full set of built-in targets.
func NewRegistry() *Registry {
	r := &Registry{targets: make(map[string]Target)}
	r.register(newGTK3Target())
	r.register(newGTK4Target())
	r.register(newShellTarget())
	r.register(newTerminalTarget())
	r.register(newChromeTarget())
	r.register(newSpotifyTarget())
	r.register(newDiscordTarget())
	r.register(newVSCodeTarget())
	r.register(newObsidianTarget())
	r.register(newVivaldiTarget())
	return r
}

func (r *Registry) register(t Target) {
	if _, exists := r.targets[t.Name()]; exists {
		panic(fmt.Sprintf("duplicate target %q", t.Name()))
	}
	r.targets[t.Name()] = t
	r.order = append(r.order, t.Name())
}

// Get retrieves a target by name.
func (r *Registry) Get(name string) (Target, bool) {
	t, ok := r.targets[name]
	return t, ok
}

// Names returns all target names in apply order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns all targets in apply order.
func (r *Registry) All() []Target {
	targets := make([]Target, 0, len(r.order))
	for _, name := range r.order {
		targets = append(targets, r.targets[name])
	}
	return targets
}

// Select resolves a list of requested names to targets, in apply order
// regardless of the order given. Unknown names are reported together so
// the user sees every mistake at once.
func (r *Registry) Select(names []string) ([]Target, error) {
	requested := make(map[string]bool, len(names))
	var unknown []string
	for _, name := range names {
		if _, ok := r.targets[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		requested[name] = true
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown targets: %v (run 'imbue targets' for the list)", unknown)
	}
	var selected []Target
	for _, name := range r.order {
		if requested[name] {
			selected = append(selected, r.targets[name])
		}
	}
	return selected, nil
}
