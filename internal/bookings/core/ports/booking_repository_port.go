package ports

import (
	"context"
	"errors"

	"bookings-insights-service/internal/bookings/core/domain"
)

type BookingRepositoryPort interface {
	// InsertBooking stores b verbatim. Bookings are never deduplicated: the
	// same payload sent twice yields two rows.
	InsertBooking(ctx context.Context, b *domain.Booking) error
	// InsertBookings stores every booking or none of them.
	InsertBookings(ctx context.Context, bookings []domain.Booking) error
}

// ErrSchemaNotReady reports that the bookings table is missing, typically
// because migrations were not applied.
var ErrSchemaNotReady = errors.New("bookings schema not ready")
