package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookings-insights-service/internal/bookings/core/domain"
	"bookings-insights-service/internal/insights/core/ports"
	"bookings-insights-service/internal/insights/core/timeline"

	"github.com/lib/pq"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type RecordSource struct {
	db       DB
	composer timeline.Composer
}

// NewRecordSource renders success filters with the policy of composer, so the
// bounds probe agrees with the predicates composer builds.
func NewRecordSource(db DB, composer timeline.Composer) *RecordSource {
	return &RecordSource{db: db, composer: composer}
}

var _ ports.RecordSourcePort = (*RecordSource)(nil)

const bookingColumns = `
    date, time, booking_id, booking_status, customer_id, vehicle_type,
    pickup_location, drop_location, v_tat, c_tat,
    canceled_rides_by_customer, canceled_rides_by_driver,
    incomplete_rides, incomplete_rides_reason, booking_value, payment_method,
    ride_distance, driver_ratings, customer_rating, vehicle_images`

func (r *RecordSource) MinMaxEventTimestamp(ctx context.Context, successOnly bool) (timeline.Range, bool, error) {
	pred, err := r.composer.Compose(timeline.FilterSpec{SuccessOnly: successOnly})
	if err != nil {
		return timeline.Range{}, false, err
	}
	frag := pred.Fragment(1)

	query := `
SELECT MIN(event_ts), MAX(event_ts)
FROM (
    SELECT ` + timeline.EventTimestampExpr + ` AS event_ts
    FROM bookings` + frag.Where() + `
) AS t`

	rows, err := r.db.QueryContext(ctx, query, frag.Args...)
	if err != nil {
		return timeline.Range{}, false, classify(err)
	}
	defer rows.Close()

	var minTS, maxTS sql.NullTime
	if rows.Next() {
		if err := rows.Scan(&minTS, &maxTS); err != nil {
			return timeline.Range{}, false, err
		}
	}
	if err := rows.Err(); err != nil {
		return timeline.Range{}, false, classify(err)
	}

	// MIN and MAX skip NULL, so both are NULL exactly when nothing parsed.
	if !minTS.Valid || !maxTS.Valid {
		return timeline.Range{}, false, nil
	}
	return timeline.Range{Start: naive(minTS.Time), End: naive(maxTS.Time)}, true, nil
}

func (r *RecordSource) FetchRows(ctx context.Context, p timeline.Predicate) ([]domain.Booking, error) {
	frag := p.Fragment(1)

	query := `
SELECT` + bookingColumns + `
FROM bookings` + frag.Where() + `
ORDER BY ` + timeline.EventTimestampExpr + ` ASC NULLS LAST, id`

	rows, err := r.db.QueryContext(ctx, query, frag.Args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return out, nil
}

func scanBooking(rows RowScanner) (domain.Booking, error) {
	var (
		date, tm, bookingID, status, customerID, vehicleType sql.NullString
		pickup, drop                                         sql.NullString
		vtat, ctat                                           sql.NullFloat64
		byCustomer, byDriver, incomplete, incompleteReason   sql.NullString
		value                                                sql.NullFloat64
		payment                                              sql.NullString
		distance, driverRatings, customerRating              sql.NullFloat64
		images                                               sql.NullString
	)

	err := rows.Scan(
		&date, &tm, &bookingID, &status, &customerID, &vehicleType,
		&pickup, &drop, &vtat, &ctat,
		&byCustomer, &byDriver,
		&incomplete, &incompleteReason, &value, &payment,
		&distance, &driverRatings, &customerRating, &images,
	)
	if err != nil {
		return domain.Booking{}, err
	}

	return domain.Booking{
		Date:                  date.String,
		Time:                  tm.String,
		BookingID:             bookingID.String,
		BookingStatus:         status.String,
		CustomerID:            customerID.String,
		VehicleType:           vehicleType.String,
		PickupLocation:        pickup.String,
		DropLocation:          drop.String,
		VTAT:                  floatPtr(vtat),
		CTAT:                  floatPtr(ctat),
		CanceledByCustomer:    byCustomer.String,
		CanceledByDriver:      byDriver.String,
		IncompleteRides:       incomplete.String,
		IncompleteRidesReason: incompleteReason.String,
		BookingValue:          floatPtr(value),
		PaymentMethod:         payment.String,
		RideDistance:          floatPtr(distance),
		DriverRatings:         floatPtr(driverRatings),
		CustomerRating:        floatPtr(customerRating),
		VehicleImages:         images.String,
	}, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// naive keeps the wall clock of a timestamp-without-time-zone value and
// carries it in UTC, like timeline.Normalize.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

const (
	pqUndefinedFunction = "42883"
	pqUndefinedTable    = "42P01"
)

func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUndefinedFunction, pqUndefinedTable:
			return fmt.Errorf("%w: %s", ports.ErrSchemaNotReady, pqErr.Message)
		}
	}
	return err
}
