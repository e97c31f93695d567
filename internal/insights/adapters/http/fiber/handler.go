package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bookings-insights-service/internal/insights/core/domain"
	"bookings-insights-service/internal/insights/core/ports"
	"bookings-insights-service/internal/insights/core/timeline"
	"bookings-insights-service/internal/insights/core/usecase"
	"bookings-insights-service/internal/observability/logger"
	"bookings-insights-service/internal/platform/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TimestampLayout renders naive timestamps without a zone suffix.
const TimestampLayout = "2006-01-02T15:04:05.999999"

// Accepted forms of the start and end query parameters, read as naive time.
var queryTimeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

const queryDateLayout = "2006-01-02"

// A date-only end covers its day up to DefaultEndTimeOfDay; a date-only start
// begins at 00:00.
const DefaultEndTimeOfDay = 23*time.Hour + 59*time.Minute

var errInvalidQuery = errors.New("invalid query")

type ExploreBookingsUseCase interface {
	Execute(ctx context.Context, in usecase.ExploreBookingsInput) (*domain.ExploreResult, error)
	Bounds(ctx context.Context, successOnly bool) (domain.Bounds, error)
}

type InsightsHandler struct {
	uc ExploreBookingsUseCase
}

func NewInsightsHandler(uc ExploreBookingsUseCase) *InsightsHandler {
	return &InsightsHandler{uc: uc}
}

// ExploreBookings godoc
// @Summary Explore bookings
// @Description Filters bookings by success and by an optional event time range, then returns the matching rows, a gap-free time series and a vehicle type breakdown.
// @Tags Insights
// @Produce json
// @Param success_only query bool false "Successful bookings only (default true)"
// @Param apply_range query bool false "Apply the start/end range (default false)"
// @Param start query string false "Range start, naive: 2024-01-01T00:00:00, 2024-01-01 00:00 or 2024-01-01"
// @Param end query string false "Range end, naive, inclusive; a bare date ends at 23:59 of that day"
// @Param granularity query string false "auto | hourly | daily | weekly | monthly (default auto)"
// @Param measure query string false "booking_value | ride_distance | driver_ratings | customer_rating | v_tat | c_tat"
// @Param aggregate query string false "count | sum | avg (default count)"
// @Param include_rows query bool false "Return the matching rows (default true)"
// @Success 200 {object} ExploreResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /insights/bookings [get]
func (h *InsightsHandler) ExploreBookings(c *fiber.Ctx) error {
	q := ExploreQuery{
		Granularity: strings.ToLower(strings.TrimSpace(c.Query("granularity", ""))),
		Measure:     strings.ToLower(strings.TrimSpace(c.Query("measure", ""))),
		Aggregate:   strings.ToLower(strings.TrimSpace(c.Query("aggregate", ""))),
	}
	if err := validate.Struct(q); err != nil {
		return badQuery(c, err)
	}

	start, err := parseQueryTime(c.Query("start", ""), 0)
	if err != nil {
		return badQuery(c, fmt.Errorf("start: %w", err))
	}
	end, err := parseQueryTime(c.Query("end", ""), DefaultEndTimeOfDay)
	if err != nil {
		return badQuery(c, fmt.Errorf("end: %w", err))
	}

	in := usecase.ExploreBookingsInput{
		SuccessOnly:  c.QueryBool("success_only", true),
		RangeEnabled: c.QueryBool("apply_range", false),
		Start:        start,
		End:          end,
		Granularity:  q.Granularity,
		Measure:      q.Measure,
		Aggregate:    q.Aggregate,
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toExploreResponse(res, c.QueryBool("include_rows", true)))
}

// GetBounds godoc
// @Summary Event time bounds
// @Description Returns the earliest and latest parseable booking event timestamps, the default range for the explorer.
// @Tags Insights
// @Produce json
// @Param success_only query bool false "Successful bookings only (default true)"
// @Success 200 {object} BoundsResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /insights/bookings/bounds [get]
func (h *InsightsHandler) GetBounds(c *fiber.Ctx) error {
	b, err := h.uc.Bounds(c.UserContext(), c.QueryBool("success_only", true))
	if err != nil {
		return writeError(c, err)
	}

	resp := BoundsResponse{SuccessOnly: b.SuccessOnly, HasData: b.HasData}
	if b.HasData {
		resp.Bounds = toRangeResponse(b.Range)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// parseQueryTime reads a naive timestamp. A bare date is placed at
// timeOfDay on that date.
func parseQueryTime(s string, timeOfDay time.Duration) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if d, err := time.Parse(queryDateLayout, s); err == nil {
		return d.Add(timeOfDay), nil
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", errInvalidQuery, s)
}

func badQuery(c *fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_query",
		Message: err.Error(),
	})
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRange),
		errors.Is(err, usecase.ErrRangeBoundMissing),
		errors.Is(err, usecase.ErrInvalidGranularity),
		errors.Is(err, usecase.ErrInvalidMeasure),
		errors.Is(err, usecase.ErrInvalidAggregate),
		errors.Is(err, usecase.ErrTooManyBuckets):
		return badQuery(c, err)
	case errors.Is(err, ports.ErrSchemaNotReady):
		logger.FromContext(c.UserContext()).Error("insights schema missing", zap.Error(err))
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "schema_not_ready",
			Message: "bookings schema is not migrated",
		})
	default:
		logger.FromContext(c.UserContext()).Error("explore bookings failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func formatTime(t time.Time) string {
	return t.Format(TimestampLayout)
}

func toRangeResponse(r timeline.Range) *RangeResponse {
	return &RangeResponse{Start: formatTime(r.Start), End: formatTime(r.End)}
}

func toExploreResponse(res *domain.ExploreResult, includeRows bool) ExploreResponse {
	resp := ExploreResponse{
		HasData:       res.HasData,
		SuccessOnly:   res.SuccessOnly,
		SuccessPolicy: string(res.Policy),
		ByVehicleType: make([]CategoryCountResponse, 0, len(res.ByVehicleType)),
		RowCount:      len(res.Rows),
	}
	if res.Bounds.Complete() {
		resp.Bounds = toRangeResponse(res.Bounds)
	}
	if res.Window != nil {
		resp.Window = toRangeResponse(*res.Window)
	}

	for _, cc := range res.ByVehicleType {
		resp.ByVehicleType = append(resp.ByVehicleType, CategoryCountResponse{Key: cc.Key, Count: cc.Count})
	}

	if res.HasData {
		s := res.Series
		series := &SeriesResponse{
			Granularity: string(s.Granularity),
			Measure:     s.Measure,
			Aggregate:   string(s.Aggregate),
			Total:       s.Total(),
			Included:    s.Included,
			Excluded:    s.Excluded,
			Points:      make([]PointResponse, 0, len(s.Points)),
		}
		for _, p := range s.Points {
			series.Points = append(series.Points, PointResponse{Start: formatTime(p.Start), Value: p.Value, Rows: p.Rows})
		}
		resp.Series = series
	}

	if includeRows {
		resp.Rows = make([]BookingRowResponse, 0, len(res.Rows))
		for _, r := range res.Rows {
			resp.Rows = append(resp.Rows, toBookingRowResponse(r))
		}
	}
	return resp
}

func toBookingRowResponse(r domain.BookingRow) BookingRowResponse {
	b := r.Booking
	out := BookingRowResponse{
		Date:                  b.Date,
		Time:                  b.Time,
		BookingID:             b.BookingID,
		BookingStatus:         b.BookingStatus,
		CustomerID:            b.CustomerID,
		VehicleType:           b.VehicleType,
		PickupLocation:        b.PickupLocation,
		DropLocation:          b.DropLocation,
		VTAT:                  b.VTAT,
		CTAT:                  b.CTAT,
		CanceledByCustomer:    b.CanceledByCustomer,
		CanceledByDriver:      b.CanceledByDriver,
		IncompleteRides:       b.IncompleteRides,
		IncompleteRidesReason: b.IncompleteRidesReason,
		BookingValue:          b.BookingValue,
		PaymentMethod:         b.PaymentMethod,
		RideDistance:          b.RideDistance,
		DriverRatings:         b.DriverRatings,
		CustomerRating:        b.CustomerRating,
		VehicleImages:         b.VehicleImages,
	}
	if r.EventTime != nil {
		s := formatTime(*r.EventTime)
		out.EventTime = &s
	}
	return out
}
