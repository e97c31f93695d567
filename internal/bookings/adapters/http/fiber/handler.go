package fiber

import (
	"context"
	"errors"
	"net/http"

	"bookings-insights-service/internal/bookings/core/domain"
	"bookings-insights-service/internal/bookings/core/ports"
	"bookings-insights-service/internal/bookings/core/usecase"
	"bookings-insights-service/internal/observability/logger"
	"bookings-insights-service/internal/platform/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EventTimeLayout renders naive event timestamps without a zone suffix.
const EventTimeLayout = "2006-01-02T15:04:05.999999"

type StoreBookingUseCase interface {
	Execute(ctx context.Context, b domain.Booking) (usecase.StoreBookingResult, error)
	BulkCreateBookings(ctx context.Context, in usecase.BulkCreateBookingsInput) (usecase.BulkCreateBookingsResult, error)
}

type BookingHandler struct {
	storeUC StoreBookingUseCase
}

func NewBookingHandler(storeUC StoreBookingUseCase) *BookingHandler {
	return &BookingHandler{storeUC: storeUC}
}

// CreateBooking godoc
// @Summary Store a booking
// @Description Stores one raw booking row. Rows whose date and time do not parse are stored but left out of time-based views (event_time is null).
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "Booking payload"
// @Success 201 {object} CreateBookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_booking",
			Message: err.Error(),
		})
	}

	res, err := h.storeUC.Execute(c.UserContext(), req.toDomain())
	if err != nil {
		return h.writeError(c, err)
	}

	resp := CreateBookingResponse{Status: "created"}
	if res.EventTime != nil {
		s := res.EventTime.Format(EventTimeLayout)
		resp.EventTime = &s
	}
	return c.Status(http.StatusCreated).JSON(resp)
}

// BulkCreateBookings godoc
// @Summary Bulk store bookings
// @Description Validates every booking, then stores the batch in one transaction: either every booking is stored or none is. Duplicates are kept.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body BulkCreateBookingsRequest true "Bulk booking payload"
// @Success 201 {object} BulkCreateBookingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /bookings/bulk [post]
func (h *BookingHandler) BulkCreateBookings(c *fiber.Ctx) error {
	var req BulkCreateBookingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if len(req.Bookings) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "bookings_list_required",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_booking",
			Message: err.Error(),
		})
	}

	inputs := make([]domain.Booking, len(req.Bookings))
	for i, b := range req.Bookings {
		inputs[i] = b.toDomain()
	}

	result, err := h.storeUC.BulkCreateBookings(
		c.UserContext(),
		usecase.BulkCreateBookingsInput{Bookings: inputs},
	)
	if err != nil {
		return h.writeError(c, err)
	}

	if result.Unparseable > 0 {
		logger.FromContext(c.UserContext()).Warn("bulk ingest stored rows without a parseable event timestamp",
			zap.Int("unparseable", result.Unparseable),
			zap.Int("created", result.Created),
		)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkCreateBookingsResponse{
		Created:     result.Created,
		Unparseable: result.Unparseable,
	})
}

func (h *BookingHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidBooking):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_booking",
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrSchemaNotReady):
		logger.FromContext(c.UserContext()).Error("bookings schema missing", zap.Error(err))
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "schema_not_ready",
			Message: "bookings schema is not migrated",
		})
	default:
		logger.FromContext(c.UserContext()).Error("store booking failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
