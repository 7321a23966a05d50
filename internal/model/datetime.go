package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day form used by the date filter routes.
const DateLayout = "2006-01-02"

// DateTime wraps time.Time and accepts either a full RFC 3339 timestamp or a
// bare calendar date on input. Calendar pickers send "2024-05-01", API
// clients send "2024-05-01T23:00:00Z"; both must round-trip.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// UnmarshalJSON parses RFC 3339 first, then falls back to a date-only form
// interpreted as midnight UTC.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date-time %q: %w", s, err)
	}
	d.Time = t.UTC()
	return nil
}

// MarshalJSON always emits RFC 3339.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(time.RFC3339) + `"`), nil
}

// Day truncates to the UTC calendar day, the precision used by the
// date filter.
func (d DateTime) Day() string {
	return d.Time.UTC().Format(DateLayout)
}
