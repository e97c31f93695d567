package fiber

// ExploreQuery is the query string of GET /insights/bookings.
type ExploreQuery struct {
	Granularity string `query:"granularity" validate:"omitempty,oneof=auto hourly daily weekly monthly"`
	Measure     string `query:"measure" validate:"omitempty,oneof=booking_value ride_distance driver_ratings customer_rating v_tat c_tat"`
	Aggregate   string `query:"aggregate" validate:"omitempty,oneof=count sum avg"`
}

type RangeResponse struct {
	Start string `json:"start" example:"2024-01-01T00:00:00"`
	End   string `json:"end" example:"2024-01-01T23:59:00"`
}

type PointResponse struct {
	Start string  `json:"start" example:"2024-01-01T09:00:00"`
	Value float64 `json:"value" example:"12"`
	Rows  int     `json:"rows" example:"12"`
}

type SeriesResponse struct {
	Granularity string          `json:"granularity" example:"hourly"`
	Measure     string          `json:"measure,omitempty" example:"booking_value"`
	Aggregate   string          `json:"aggregate" example:"count"`
	Total       float64         `json:"total"`
	Included    int             `json:"included"`
	Excluded    int             `json:"excluded"`
	Points      []PointResponse `json:"points"`
}

type CategoryCountResponse struct {
	Key   string `json:"key" example:"Auto"`
	Count int    `json:"count" example:"42"`
}

type BookingRowResponse struct {
	EventTime             *string  `json:"event_time"`
	Date                  string   `json:"date"`
	Time                  string   `json:"time"`
	BookingID             string   `json:"booking_id"`
	BookingStatus         string   `json:"booking_status"`
	CustomerID            string   `json:"customer_id"`
	VehicleType           string   `json:"vehicle_type"`
	PickupLocation        string   `json:"pickup_location"`
	DropLocation          string   `json:"drop_location"`
	VTAT                  *float64 `json:"v_tat"`
	CTAT                  *float64 `json:"c_tat"`
	CanceledByCustomer    string   `json:"canceled_rides_by_customer"`
	CanceledByDriver      string   `json:"canceled_rides_by_driver"`
	IncompleteRides       string   `json:"incomplete_rides"`
	IncompleteRidesReason string   `json:"incomplete_rides_reason"`
	BookingValue          *float64 `json:"booking_value"`
	PaymentMethod         string   `json:"payment_method"`
	RideDistance          *float64 `json:"ride_distance"`
	DriverRatings         *float64 `json:"driver_ratings"`
	CustomerRating        *float64 `json:"customer_rating"`
	VehicleImages         string   `json:"vehicle_images"`
}

type ExploreResponse struct {
	HasData       bool                    `json:"has_data"`
	SuccessOnly   bool                    `json:"success_only"`
	SuccessPolicy string                  `json:"success_policy" example:"strict_status"`
	Bounds        *RangeResponse          `json:"bounds,omitempty"`
	Window        *RangeResponse          `json:"window,omitempty"`
	Series        *SeriesResponse         `json:"series,omitempty"`
	ByVehicleType []CategoryCountResponse `json:"by_vehicle_type"`
	RowCount      int                     `json:"row_count"`
	Rows          []BookingRowResponse    `json:"rows,omitempty"`
}

type BoundsResponse struct {
	SuccessOnly bool           `json:"success_only"`
	HasData     bool           `json:"has_data"`
	Bounds      *RangeResponse `json:"bounds,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"invalid time range: end is before start"`
}
