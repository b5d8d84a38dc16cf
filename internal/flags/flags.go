// Package flags holds the boolean feature toggles read from config.
package flags

import (
	"maps"
	"slices"

	"github.com/mockbanker/mockbanker/internal/log"
)

const (
	// FlagHistory records every generation batch in the activity history.
	FlagHistory = "history"

	// FlagRepairHints shows the "did you mean" suggestion for invalid input.
	FlagRepairHints = "repair-hints"

	// FlagMouse enables mouse support (clickable tabs and selector rows).
	FlagMouse = "mouse"
)

// Defaults apply to flags absent from config.
var Defaults = map[string]bool{
	FlagHistory:     true,
	FlagRepairHints: true,
	FlagMouse:       true,
}

// Registry is read-only after New.
type Registry struct {
	flags map[string]bool
}

// New merges configured over Defaults.
func New(configured map[string]bool) *Registry {
	merged := maps.Clone(Defaults)
	maps.Copy(merged, configured)
	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "feature flags", "flags", r.String())
	return r
}

// Enabled is false for unknown flags and on a nil Registry.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}

func (r *Registry) String() string {
	if r == nil {
		return ""
	}
	out := ""
	for _, k := range slices.Sorted(maps.Keys(r.flags)) {
		if out != "" {
			out += ","
		}
		if r.flags[k] {
			out += k + "=on"
		} else {
			out += k + "=off"
		}
	}
	return out
}
