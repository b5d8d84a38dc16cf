// Package theme stores the light/dark preference.
package theme

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mockbanker/mockbanker/internal/kvstore"
	"github.com/mockbanker/mockbanker/internal/log"
)

// Key is the store key for the preference.
const Key = "theme"

// Mode is a color scheme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Parse accepts "light" or "dark" in any case.
func Parse(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Toggled is the other mode.
func (m Mode) Toggled() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// IsDark reports m == Dark.
func (m Mode) IsDark() bool { return m == Dark }

// Preference resolves and persists the mode.
type Preference struct {
	store  kvstore.Store
	forced Mode
	detect func() bool
}

// Option configures a Preference.
type Option func(*Preference)

// WithForced pins the mode (from config). Stored values are then ignored.
func WithForced(m Mode) Option {
	return func(p *Preference) { p.forced = m }
}

// WithDetector replaces terminal background detection.
func WithDetector(isDark func() bool) Option {
	return func(p *Preference) { p.detect = isDark }
}

// New creates a Preference over store.
func New(store kvstore.Store, opts ...Option) *Preference {
	p := &Preference{store: store, detect: lipgloss.HasDarkBackground}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Load returns the forced mode if any, then the stored one, then the
// terminal's own background.
func (p *Preference) Load(ctx context.Context) Mode {
	if p.forced != "" {
		return p.forced
	}
	raw, found, err := p.store.Get(ctx, Key)
	if err != nil {
		log.ErrorErr(log.CatConfig, "read theme", err)
	}
	if found {
		if m, ok := Parse(raw); ok {
			return m
		}
		log.Warn(log.CatConfig, "ignoring stored theme", "value", raw)
	}
	if p.detect() {
		return Dark
	}
	return Light
}

// Save persists m.
func (p *Preference) Save(ctx context.Context, m Mode) error {
	if err := p.store.Set(ctx, Key, string(m)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips current and persists the result. The new mode is returned
// even when saving fails.
func (p *Preference) Toggle(ctx context.Context, current Mode) (Mode, error) {
	next := current.Toggled()
	return next, p.Save(ctx, next)
}
