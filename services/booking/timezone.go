package booking

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// Slot identity is always compared and submitted in this zone, whatever the
// visitor's local timezone is.
const CanonicalTimezone = "Europe/Oslo"

var canonicalLocation = mustLoadLocation(CanonicalTimezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("booking: load location %s: %v", name, err))
	}
	return loc
}

// Location returns the canonical booking location.
func Location() *time.Location {
	return canonicalLocation
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseStartTime accepts an RFC3339 timestamp with any offset, or a wall-clock time
// without offset which is read as Europe/Oslo.
func ParseStartTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidStartTime
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(canonicalLocation), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, canonicalLocation); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStartTime, raw)
}

// NormalizeStartTime renders t in the canonical zone, the only form ever submitted.
func NormalizeStartTime(t time.Time) string {
	return t.In(canonicalLocation).Format(time.RFC3339)
}

// SameSlot compares two instants as slot identities.
func SameSlot(a, b time.Time) bool {
	return NormalizeStartTime(a.Truncate(time.Minute)) == NormalizeStartTime(b.Truncate(time.Minute))
}
