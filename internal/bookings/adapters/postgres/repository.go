package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookings-insights-service/internal/bookings/core/domain"
	"bookings-insights-service/internal/bookings/core/ports"

	"github.com/lib/pq"
)

type BookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

var _ ports.BookingRepositoryPort = (*BookingRepository)(nil)

// No ON CONFLICT: bookings are stored as delivered, duplicates included.
const insertBookingSQL = `
INSERT INTO bookings (
    date,
    time,
    booking_id,
    booking_status,
    customer_id,
    vehicle_type,
    pickup_location,
    drop_location,
    v_tat,
    c_tat,
    canceled_rides_by_customer,
    canceled_rides_by_driver,
    incomplete_rides,
    incomplete_rides_reason,
    booking_value,
    payment_method,
    ride_distance,
    driver_ratings,
    customer_rating,
    vehicle_images
) VALUES (
    $1, $2, $3, $4, $5,
    $6, $7, $8, $9, $10,
    $11, $12, $13, $14, $15,
    $16, $17, $18, $19, $20
);
`

func (r *BookingRepository) InsertBooking(ctx context.Context, b *domain.Booking) error {
	return classify(insert(ctx, r.db, b))
}

// InsertBookings stores all bookings in one transaction. A failing row rolls
// back the rows before it, so a retried batch is never stored twice.
func (r *BookingRepository) InsertBookings(ctx context.Context, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	err := r.db.InTx(ctx, func(tx Execer) error {
		for i := range bookings {
			if err := insert(ctx, tx, &bookings[i]); err != nil {
				return fmt.Errorf("booking %d: %w", i, err)
			}
		}
		return nil
	})
	return classify(err)
}

func insert(ctx context.Context, ex Execer, b *domain.Booking) error {
	_, err := ex.ExecContext(ctx, insertBookingSQL,
		nullableText(b.Date),
		nullableText(b.Time),
		nullableText(b.BookingID),
		nullableText(b.BookingStatus),
		nullableText(b.CustomerID),
		nullableText(b.VehicleType),
		nullableText(b.PickupLocation),
		nullableText(b.DropLocation),
		nullableFloat(b.VTAT),
		nullableFloat(b.CTAT),
		nullableText(b.CanceledByCustomer),
		nullableText(b.CanceledByDriver),
		nullableText(b.IncompleteRides),
		nullableText(b.IncompleteRidesReason),
		nullableFloat(b.BookingValue),
		nullableText(b.PaymentMethod),
		nullableFloat(b.RideDistance),
		nullableFloat(b.DriverRatings),
		nullableFloat(b.CustomerRating),
		nullableText(b.VehicleImages),
	)
	return err
}

// classify maps an undefined-table error to ports.ErrSchemaNotReady.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
		return fmt.Errorf("%w: %s", ports.ErrSchemaNotReady, pqErr.Message)
	}
	return err
}

// nullableText stores blank text as NULL; the raw value is kept otherwise,
// surrounding whitespace included.
func nullableText(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
