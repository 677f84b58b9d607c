package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentiva/slot-reservation/internal/service"
)

// SweepRunner is the service surface behind the manual sweep endpoint.
type SweepRunner interface {
	Sweep(ctx context.Context, abandonment time.Duration) (service.SweepResult, error)
}

// SweepHandler serves POST /v1/sweep, which runs the same pass as the
// background ticker.  Useful for ops runbooks and integration tests; the
// endpoint is idempotent so triggering it alongside the ticker is safe.
type SweepHandler struct {
	sweeper SweepRunner
}

// NewSweepHandler constructs the handler.
func NewSweepHandler(sweeper SweepRunner) *SweepHandler {
	return &SweepHandler{sweeper: sweeper}
}

type sweepRequest struct {
	AbandonmentMinutes int `json:"abandonment_minutes"`
}

// Run handles POST /v1/sweep.  An omitted or zero abandonment_minutes
// falls back to the configured window.
func (h *SweepHandler) Run(c echo.Context) error {
	var body sweepRequest
	// An empty body is fine; only reject bodies that fail to parse.
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.AbandonmentMinutes < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "abandonment_minutes must not be negative"})
	}

	res, err := h.sweeper.Sweep(c.Request().Context(), time.Duration(body.AbandonmentMinutes)*time.Minute)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sweep failed"})
	}
	freed := res.FreedBookingIDs
	if freed == nil {
		freed = []uint64{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"removed_holds":            res.RemovedHolds,
		"removed_pending_bookings": res.RemovedPendingBookings,
		"freed_booking_ids":        freed,
	})
}
