package ports

import (
	"context"
	"errors"

	"bookings-insights-service/internal/bookings/core/domain"
	"bookings-insights-service/internal/insights/core/timeline"
)

type RecordSourcePort interface {
	// MinMaxEventTimestamp:
	//   found = false, err = nil  -> no parseable event timestamp (empty store)
	//   found = true,  err = nil  -> bounds of the parseable timestamps
	// Only successful bookings are probed when successOnly is set.
	MinMaxEventTimestamp(ctx context.Context, successOnly bool) (bounds timeline.Range, found bool, err error)

	// FetchRows returns the rows selected by p, oldest event first. Rows with
	// an unparseable timestamp sort last.
	FetchRows(ctx context.Context, p timeline.Predicate) ([]domain.Booking, error)
}

// ErrSchemaNotReady reports that the bookings schema or the booking_event_ts
// function is missing, typically because migrations were not applied.
var ErrSchemaNotReady = errors.New("bookings schema not ready")
