package domain

import (
	"time"

	bookings "bookings-insights-service/internal/bookings/core/domain"
	"bookings-insights-service/internal/insights/core/timeline"
)

// UnknownCategory labels rows whose category column is blank.
const UnknownCategory = "unknown"

type BookingRow struct {
	Booking   bookings.Booking
	EventTime *time.Time // nil when the timestamp is unparseable
}

type CategoryCount struct {
	Key   string
	Count int
}

type Bounds struct {
	SuccessOnly bool
	HasData     bool
	Range       timeline.Range
}

// ExploreResult is the outcome of one explorer request. HasData is false
// when the probe found no parseable timestamp or the filter matched no rows;
// that is a valid answer, not a failure.
type ExploreResult struct {
	HasData     bool
	SuccessOnly bool
	Policy      timeline.SuccessPolicy

	Bounds timeline.Range  // min/max of the store under the success filter
	Window *timeline.Range // active range filter, nil when disabled
	Rows   []BookingRow
	Series timeline.Series

	ByVehicleType []CategoryCount
}
