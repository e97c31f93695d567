package timeline

import (
	"regexp"
	"strings"
	"time"

	"bookings-insights-service/internal/bookings/core/domain"
)

// The patterns below are shared verbatim with the booking_event_ts SQL
// function (see internal/migration/sql). Keep both sides in sync.
const (
	datePattern      = `[1-9][0-9]{3}-[0-9]{2}-[0-9]{2}`
	timeOfDayPattern = `(?:[01]?[0-9]|2[0-3]):[0-5][0-9](?::[0-5][0-9](?:\.[0-9]{1,6})?)?`

	// trimSet is what btrim(x, E' \t\r\n') strips on the database side.
	trimSet = " \t\r\n"

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

var (
	dateOnlyRe  = regexp.MustCompile(`^` + datePattern + `$`)
	timeOfDayRe = regexp.MustCompile(`^` + timeOfDayPattern + `$`)
	fullDateRe  = regexp.MustCompile(`^` + datePattern + `(?:[ T]` + timeOfDayPattern + `)?$`)
)

// notApplicable lists time placeholders treated like a blank time.
var notApplicable = map[string]struct{}{
	"n/a":  {},
	"na":   {},
	"null": {},
	"none": {},
	"nan":  {},
}

func trim(s string) string {
	return strings.Trim(s, trimSet)
}

func isBlank(s string) bool {
	s = trim(s)
	if s == "" {
		return true
	}
	_, ok := notApplicable[strings.ToLower(s)]
	return ok
}

// Normalize derives the event timestamp of a booking from its raw date and
// time fields. The result is a naive wall-clock time carried in UTC. ok is
// false when neither form parses; such rows stay out of temporal views.
func Normalize(date, timeOfDay string) (ts time.Time, ok bool) {
	d := trim(date)

	if !isBlank(timeOfDay) {
		t := trim(timeOfDay)
		part, found := datePart(d)
		if !found || !timeOfDayRe.MatchString(t) {
			return time.Time{}, false
		}
		return parse(dateTimeLayout, part+" "+padSeconds(t))
	}

	if !fullDateRe.MatchString(d) {
		return time.Time{}, false
	}
	if len(d) == len(dateLayout) {
		return parse(dateLayout, d)
	}
	return parse(dateTimeLayout, d[:len(dateLayout)]+" "+padSeconds(d[len(dateLayout)+1:]))
}

// NormalizeBooking is Normalize applied to a booking row.
func NormalizeBooking(b domain.Booking) (time.Time, bool) {
	return Normalize(b.Date, b.Time)
}

// datePart returns the leading YYYY-MM-DD of d, dropping an embedded time of
// day separated by a space or a 'T'.
func datePart(d string) (string, bool) {
	n := len(dateLayout)
	if len(d) < n || !dateOnlyRe.MatchString(d[:n]) {
		return "", false
	}
	if len(d) > n && d[n] != ' ' && d[n] != 'T' {
		return "", false
	}
	return d[:n], true
}

// padSeconds turns HH:MM into HH:MM:00.
func padSeconds(t string) string {
	if strings.Count(t, ":") == 1 {
		return t + ":00"
	}
	return t
}

func parse(layout, value string) (time.Time, bool) {
	ts, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
