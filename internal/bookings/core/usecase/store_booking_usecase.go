package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookings-insights-service/internal/bookings/core/domain"
	"bookings-insights-service/internal/bookings/core/ports"
	"bookings-insights-service/internal/insights/core/timeline"
)

var ErrInvalidBooking = errors.New("invalid booking")

const maxRating = 5

type StoreBookingUseCase struct {
	repo ports.BookingRepositoryPort
}

func NewStoreBookingUseCase(repo ports.BookingRepositoryPort) *StoreBookingUseCase {
	return &StoreBookingUseCase{repo: repo}
}

// StoreBookingResult tells the caller whether the stored row takes part in
// time-based views. EventTime is nil when date and time do not parse.
type StoreBookingResult struct {
	EventTime *time.Time
}

// Execute validates and stores one booking. Date and time are stored as
// given; a malformed date is accepted and only left out of temporal views.
func (uc *StoreBookingUseCase) Execute(ctx context.Context, b domain.Booking) (StoreBookingResult, error) {
	if err := validateBooking(b); err != nil {
		return StoreBookingResult{}, err
	}

	if err := uc.repo.InsertBooking(ctx, &b); err != nil {
		return StoreBookingResult{}, err
	}

	var res StoreBookingResult
	if ts, ok := timeline.NormalizeBooking(b); ok {
		res.EventTime = &ts
	}
	return res, nil
}

type BulkCreateBookingsInput struct {
	Bookings []domain.Booking
}

type BulkCreateBookingsResult struct {
	Created     int
	Unparseable int // stored rows without a usable event timestamp
}

// BulkCreateBookings validates every booking, then stores the batch
// atomically. On error nothing is stored and the request can be retried.
func (uc *StoreBookingUseCase) BulkCreateBookings(ctx context.Context, in BulkCreateBookingsInput) (BulkCreateBookingsResult, error) {
	for i, b := range in.Bookings {
		if err := validateBooking(b); err != nil {
			return BulkCreateBookingsResult{}, fmt.Errorf("booking %d: %w", i, err)
		}
	}

	if err := uc.repo.InsertBookings(ctx, in.Bookings); err != nil {
		return BulkCreateBookingsResult{}, err
	}

	res := BulkCreateBookingsResult{Created: len(in.Bookings)}
	for _, b := range in.Bookings {
		if _, ok := timeline.NormalizeBooking(b); !ok {
			res.Unparseable++
		}
	}
	return res, nil
}

func validateBooking(b domain.Booking) error {
	if strings.TrimSpace(b.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidBooking)
	}

	nonNegative := map[string]*float64{
		domain.MeasureBookingValue: b.BookingValue,
		domain.MeasureRideDistance: b.RideDistance,
		domain.MeasureVTAT:         b.VTAT,
		domain.MeasureCTAT:         b.CTAT,
	}
	for col, v := range nonNegative {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidBooking, col)
		}
	}

	ratings := map[string]*float64{
		domain.MeasureDriverRatings:  b.DriverRatings,
		domain.MeasureCustomerRating: b.CustomerRating,
	}
	for col, v := range ratings {
		if v != nil && (*v < 0 || *v > maxRating) {
			return fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidBooking, col, maxRating)
		}
	}

	return nil
}
