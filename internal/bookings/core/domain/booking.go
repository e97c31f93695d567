package domain

// Booking is one raw row of the bookings store. Date and Time are kept as the
// store delivers them; the event timestamp is derived on read.
type Booking struct {
	Date string
	Time string

	BookingID     string
	BookingStatus string
	CustomerID    string
	VehicleType   string

	PickupLocation string
	DropLocation   string

	VTAT *float64
	CTAT *float64

	CanceledByCustomer    string
	CanceledByDriver      string
	IncompleteRides       string
	IncompleteRidesReason string

	BookingValue   *float64
	PaymentMethod  string
	RideDistance   *float64
	DriverRatings  *float64
	CustomerRating *float64
	VehicleImages  string
}

// Numeric columns usable as a chart measure.
const (
	MeasureBookingValue   = "booking_value"
	MeasureRideDistance   = "ride_distance"
	MeasureDriverRatings  = "driver_ratings"
	MeasureCustomerRating = "customer_rating"
	MeasureVTAT           = "v_tat"
	MeasureCTAT           = "c_tat"
)

// IsMeasureColumn reports whether column names a numeric booking column.
func IsMeasureColumn(column string) bool {
	switch column {
	case MeasureBookingValue, MeasureRideDistance, MeasureDriverRatings,
		MeasureCustomerRating, MeasureVTAT, MeasureCTAT:
		return true
	}
	return false
}

// Measure returns the value of a numeric column, false when the column is
// unknown or NULL for this row.
func (b Booking) Measure(column string) (float64, bool) {
	var v *float64
	switch column {
	case MeasureBookingValue:
		v = b.BookingValue
	case MeasureRideDistance:
		v = b.RideDistance
	case MeasureDriverRatings:
		v = b.DriverRatings
	case MeasureCustomerRating:
		v = b.CustomerRating
	case MeasureVTAT:
		v = b.VTAT
	case MeasureCTAT:
		v = b.CTAT
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}
