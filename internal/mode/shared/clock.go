package shared

import (
	"fmt"
	"time"
)

// Clock provides the current time. Use RealClock for production
// and FixedClock for testing.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// FormatEntryTime renders a history timestamp as "2006-01-02 15:04 (5m ago)"
// in the local zone.
func FormatEntryTime(t time.Time, clock Clock) string {
	return t.Local().Format("2006-01-02 15:04") + " (" + RelativeTime(t, clock.Now()) + ")"
}

// RelativeTime describes how long before now t was: "now", "5m ago", "3h ago",
// "2d ago", "1w ago", "3mo ago" or "1y ago". Entries stamped after now (clock
// skew between processes sharing a store) read as "now".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 4*7*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}
