package fiber

import "bookings-insights-service/internal/bookings/core/domain"

// CreateBookingRequest represents one raw booking row
// @Description Booking ingest DTO. date and time are stored as sent.
type CreateBookingRequest struct {
	Date                  string   `json:"date" validate:"required" example:"2024-03-23"`
	Time                  string   `json:"time" example:"12:29:38"`
	BookingID             string   `json:"booking_id" example:"CNR5884300"`
	BookingStatus         string   `json:"booking_status" example:"Success"`
	CustomerID            string   `json:"customer_id" example:"CID1982111"`
	VehicleType           string   `json:"vehicle_type" example:"eBike"`
	PickupLocation        string   `json:"pickup_location" example:"Palam Vihar"`
	DropLocation          string   `json:"drop_location" example:"Jhilmil"`
	VTAT                  *float64 `json:"v_tat" validate:"omitempty,gte=0"`
	CTAT                  *float64 `json:"c_tat" validate:"omitempty,gte=0"`
	CanceledByCustomer    string   `json:"canceled_rides_by_customer"`
	CanceledByDriver      string   `json:"canceled_rides_by_driver"`
	IncompleteRides       string   `json:"incomplete_rides"`
	IncompleteRidesReason string   `json:"incomplete_rides_reason"`
	BookingValue          *float64 `json:"booking_value" validate:"omitempty,gte=0" example:"237"`
	PaymentMethod         string   `json:"payment_method" example:"UPI"`
	RideDistance          *float64 `json:"ride_distance" validate:"omitempty,gte=0" example:"5.73"`
	DriverRatings         *float64 `json:"driver_ratings" validate:"omitempty,gte=0,lte=5" example:"4.5"`
	CustomerRating        *float64 `json:"customer_rating" validate:"omitempty,gte=0,lte=5" example:"4.9"`
	VehicleImages         string   `json:"vehicle_images"`
}

func (r CreateBookingRequest) toDomain() domain.Booking {
	return domain.Booking{
		Date:                  r.Date,
		Time:                  r.Time,
		BookingID:             r.BookingID,
		BookingStatus:         r.BookingStatus,
		CustomerID:            r.CustomerID,
		VehicleType:           r.VehicleType,
		PickupLocation:        r.PickupLocation,
		DropLocation:          r.DropLocation,
		VTAT:                  r.VTAT,
		CTAT:                  r.CTAT,
		CanceledByCustomer:    r.CanceledByCustomer,
		CanceledByDriver:      r.CanceledByDriver,
		IncompleteRides:       r.IncompleteRides,
		IncompleteRidesReason: r.IncompleteRidesReason,
		BookingValue:          r.BookingValue,
		PaymentMethod:         r.PaymentMethod,
		RideDistance:          r.RideDistance,
		DriverRatings:         r.DriverRatings,
		CustomerRating:        r.CustomerRating,
		VehicleImages:         r.VehicleImages,
	}
}

type CreateBookingResponse struct {
	Status    string  `json:"status" example:"created"`
	EventTime *string `json:"event_time" example:"2024-03-23T12:29:38"`
}

type BulkCreateBookingsRequest struct {
	Bookings []CreateBookingRequest `json:"bookings" validate:"required,min=1,dive"`
}

type BulkCreateBookingsResponse struct {
	Created     int `json:"created"`
	Unparseable int `json:"unparseable"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_booking"`
	Message string `json:"message" example:"date is required"`
}
