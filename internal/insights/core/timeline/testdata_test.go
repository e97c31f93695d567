package timeline

import (
	"bookings-insights-service/internal/bookings/core/domain"
)

func f64(v float64) *float64 { return &v }

// fixtureBookings mixes statuses, date shapes and one unparseable row.
func fixtureBookings() []domain.Booking {
	return []domain.Booking{
		{BookingID: "B1", Date: "2024-01-01", Time: "09:00:00", BookingStatus: "Success", VehicleType: "Auto", BookingValue: f64(100)},
		{BookingID: "B2", Date: "2024-01-01 00:00:00", Time: "10:15", BookingStatus: " SUCCESS ", VehicleType: "Bike", BookingValue: f64(50)},
		{BookingID: "B3", Date: "2024-01-01", Time: "23:00:00", BookingStatus: "success", VehicleType: "Auto", BookingValue: f64(30)},
		{BookingID: "B4", Date: "2024-01-01", Time: "11:00:00", BookingStatus: "Canceled by Customer", CanceledByCustomer: "Driver is not moving towards pickup location", VehicleType: "Auto"},
		{BookingID: "B5", Date: "2024-01-02 08:30:00", Time: "", BookingStatus: "Incomplete", IncompleteRides: "Yes", VehicleType: "Mini"},
		{BookingID: "B6", Date: "2024-01-02", Time: "N/A", BookingStatus: "Driver Not Found", CanceledByCustomer: "", CanceledByDriver: "0", IncompleteRides: "No", VehicleType: "Prime Sedan"},
		{BookingID: "B7", Date: "01/02/2024", Time: "12:00", BookingStatus: "Success", VehicleType: "Bike", BookingValue: f64(70)},
		{BookingID: "B8", Date: "2024-01-03", Time: "00:00:00", BookingStatus: "Success", VehicleType: "Mini", BookingValue: f64(20)},
	}
}

func ids(rows []domain.Booking) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.BookingID)
	}
	return out
}
