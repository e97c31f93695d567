package timeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bookings-insights-service/internal/bookings/core/domain"
)

var (
	ErrInvalidTimeRange   = errors.New("invalid time range: end is before start")
	ErrRangeBoundMissing  = errors.New("invalid time range: start and end are both required when range filtering is enabled")
	ErrInvalidSuccessRule = errors.New("invalid success policy")
)

// SuccessMarker is the booking_status value of a successful booking, compared
// after trimming and lower-casing.
const SuccessMarker = "success"

// SuccessPolicy selects what counts as a successful booking.
type SuccessPolicy string

const (
	// StrictStatus: booking_status equals the success marker.
	StrictStatus SuccessPolicy = "strict_status"
	// StatusOrCleanRide: strict status, or a ride with no customer
	// cancellation, no driver cancellation and no incomplete flag.
	StatusOrCleanRide SuccessPolicy = "status_or_clean_ride"

	DefaultSuccessPolicy = StrictStatus
)

// ParseSuccessPolicy maps a configuration value to a policy. Empty selects
// DefaultSuccessPolicy.
func ParseSuccessPolicy(s string) (SuccessPolicy, error) {
	switch SuccessPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultSuccessPolicy, nil
	case StrictStatus:
		return StrictStatus, nil
	case StatusOrCleanRide:
		return StatusOrCleanRide, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSuccessRule, s)
}

// Range is a closed interval of naive timestamps. A zero bound is missing.
type Range struct {
	Start time.Time
	End   time.Time
}

// Complete reports whether both bounds are set.
func (r Range) Complete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Contains reports whether ts lies in [Start, End].
func (r Range) Contains(ts time.Time) bool {
	return !ts.Before(r.Start) && !ts.After(r.End)
}

// SpanDays is the number of whole days between Start and End.
func (r Range) SpanDays() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start) / (24 * time.Hour))
}

// FilterSpec describes which rows a query selects. It is built per request
// and never mutated.
type FilterSpec struct {
	SuccessOnly  bool
	Range        Range
	RangeEnabled bool
}

// Validate rejects range settings the caller has to correct. A range that is
// not enabled is never checked.
func (s FilterSpec) Validate() error {
	if !s.RangeEnabled {
		return nil
	}
	if !s.Range.Complete() {
		return ErrRangeBoundMissing
	}
	if s.Range.End.Before(s.Range.Start) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Condition is one atomic row filter. Every condition evaluates in-process
// and renders to SQL with identical semantics.
type Condition interface {
	Match(b domain.Booking) bool
	render(w *fragmentWriter)
}

// SuccessCondition selects successful bookings under Policy.
type SuccessCondition struct {
	Policy SuccessPolicy
}

func (c SuccessCondition) Match(b domain.Booking) bool {
	if strings.ToLower(trim(b.BookingStatus)) == SuccessMarker {
		return true
	}
	if c.Policy != StatusOrCleanRide {
		return false
	}
	return isClear(b.CanceledByCustomer) && isClear(b.CanceledByDriver) && isClear(b.IncompleteRides)
}

// clearValues are the contents of a cancellation or incomplete-ride column
// meaning "did not happen".
var clearValues = []string{"", "0", "no", "false", "n/a", "na", "null", "none", "nan"}

func isClear(s string) bool {
	s = strings.ToLower(trim(s))
	for _, v := range clearValues {
		if s == v {
			return true
		}
	}
	return false
}

// RangeCondition selects rows whose event timestamp lies in Range. Rows with
// an unparseable timestamp never match.
type RangeCondition struct {
	Range Range
}

func (c RangeCondition) Match(b domain.Booking) bool {
	ts, ok := NormalizeBooking(b)
	return ok && c.Range.Contains(ts)
}

// Predicate is a conjunction of conditions. The zero value selects every row.
type Predicate struct {
	conditions []Condition
}

// NewPredicate builds a predicate from explicit conditions.
func NewPredicate(conds ...Condition) Predicate {
	return Predicate{conditions: append([]Condition(nil), conds...)}
}

// Match reports whether b satisfies every condition.
func (p Predicate) Match(b domain.Booking) bool {
	for _, c := range p.conditions {
		if !c.Match(b) {
			return false
		}
	}
	return true
}

// Filter returns the rows matching p, in input order.
func (p Predicate) Filter(rows []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, r := range rows {
		if p.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// IsUniversal reports whether p has no conditions.
func (p Predicate) IsUniversal() bool {
	return len(p.conditions) == 0
}

// Conditions returns a copy of the conditions of p.
func (p Predicate) Conditions() []Condition {
	return append([]Condition(nil), p.conditions...)
}

// ActiveRange returns the range p filters on, if any.
func (p Predicate) ActiveRange() (Range, bool) {
	for _, c := range p.conditions {
		if rc, ok := c.(RangeCondition); ok {
			return rc.Range, true
		}
	}
	return Range{}, false
}

// Composer turns filter specs into predicates under one success policy.
type Composer struct {
	policy SuccessPolicy
}

func NewComposer(policy SuccessPolicy) Composer {
	if policy == "" {
		policy = DefaultSuccessPolicy
	}
	return Composer{policy: policy}
}

func (c Composer) Policy() SuccessPolicy {
	if c.policy == "" {
		return DefaultSuccessPolicy
	}
	return c.policy
}

// Compose validates spec and builds its predicate. Range bounds are truncated
// to microseconds, the precision of the database timestamp type.
func (c Composer) Compose(spec FilterSpec) (Predicate, error) {
	if err := spec.Validate(); err != nil {
		return Predicate{}, err
	}

	var conds []Condition
	if spec.SuccessOnly {
		conds = append(conds, SuccessCondition{Policy: c.Policy()})
	}
	if spec.RangeEnabled {
		conds = append(conds, RangeCondition{Range: Range{
			Start: spec.Range.Start.Truncate(time.Microsecond),
			End:   spec.Range.End.Truncate(time.Microsecond),
		}})
	}
	return Predicate{conditions: conds}, nil
}
