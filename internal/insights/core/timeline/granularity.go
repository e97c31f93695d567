package timeline

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidGranularity = errors.New("invalid granularity")

// Granularity is the width of a bucket.
type Granularity string

const (
	Hourly  Granularity = "hourly"
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// DefaultHourlyMaxSpanDays is the widest range, in whole days, that
// AutoGranularity still charts hourly.
const DefaultHourlyMaxSpanDays = 3

// calendar aligns timestamps to bucket boundaries and steps between them.
type calendar struct {
	truncate func(time.Time) time.Time
	next     func(time.Time) time.Time
}

var calendars = map[Granularity]calendar{
	Hourly: {
		truncate: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
		},
		next: func(t time.Time) time.Time { return t.Add(time.Hour) },
	},
	Daily: {
		truncate: beginDay,
		next:     func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
	},
	Weekly: {
		truncate: func(t time.Time) time.Time {
			d := beginDay(t)
			offset := (int(d.Weekday()) + 6) % 7 // Monday starts the week
			return d.AddDate(0, 0, -offset)
		},
		next: func(t time.Time) time.Time { return t.AddDate(0, 0, 7) },
	},
	Monthly: {
		truncate: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		},
		next: func(t time.Time) time.Time { return t.AddDate(0, 1, 0) },
	},
}

func beginDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseGranularity accepts the names above, case-insensitively.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := calendars[g]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
	}
	return g, nil
}

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	_, ok := calendars[g]
	return ok
}

// Truncate returns the start of the bucket holding t.
func (g Granularity) Truncate(t time.Time) time.Time {
	return calendars[g].truncate(t)
}

// Next returns the start of the bucket after the one starting at start.
func (g Granularity) Next(start time.Time) time.Time {
	return calendars[g].next(start)
}

// AutoGranularity picks Hourly for ranges spanning at most hourlyMaxSpanDays
// whole days and Daily otherwise. A non-positive threshold uses
// DefaultHourlyMaxSpanDays.
func AutoGranularity(r Range, hourlyMaxSpanDays int) Granularity {
	if hourlyMaxSpanDays <= 0 {
		hourlyMaxSpanDays = DefaultHourlyMaxSpanDays
	}
	if r.SpanDays() <= hourlyMaxSpanDays {
		return Hourly
	}
	return Daily
}
