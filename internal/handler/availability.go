package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentiva/slot-reservation/internal/middleware"
	"github.com/rentiva/slot-reservation/internal/model"
	"github.com/rentiva/slot-reservation/internal/repository"
	"github.com/rentiva/slot-reservation/internal/service"
)

// AvailabilityChecker is the service surface this handler needs; the
// indirection keeps handler tests free of a database.
type AvailabilityChecker interface {
	Check(ctx context.Context, in service.CheckInput) (*model.ReservationCandidate, error)
}

// AvailabilityHandler serves POST /v1/availability.
type AvailabilityHandler struct {
	svc AvailabilityChecker
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(svc AvailabilityChecker) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

type availabilityRequest struct {
	ProductID      uint64 `json:"product_id"`
	DeliveryDate   string `json:"delivery_date"`
	PickupDate     string `json:"pickup_date"`
	DeliveryWindow string `json:"delivery_window"`
	PickupWindow   string `json:"pickup_window"`
	LeadTimeHours  int    `json:"lead_time_hours"`
}

// Check handles POST /v1/availability.  A negative answer is still a 200:
// "nothing free" is the expected outcome of a valid query, and the body
// carries a machine-readable reason so the UI can redirect the customer.
func (h *AvailabilityHandler) Check(c echo.Context) error {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body availabilityRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	cand, err := h.svc.Check(c.Request().Context(), service.CheckInput{
		ProductID:      body.ProductID,
		DeliveryDate:   body.DeliveryDate,
		PickupDate:     body.PickupDate,
		DeliveryWindow: body.DeliveryWindow,
		PickupWindow:   body.PickupWindow,
		LeadTimeHours:  body.LeadTimeHours,
		SessionID:      sessionID,
	})
	if err != nil {
		if ve, ok := model.AsValidation(err); ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
		}
		if ue, ok := model.AsUnavailable(err); ok {
			return c.JSON(http.StatusOK, echo.Map{
				"is_available": false,
				"reason":       string(ue.Reason),
				"detail":       ue.Detail,
			})
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"is_available": true,
		"candidate":    candidateToDTO(cand),
	})
}
