package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentiva/slot-reservation/internal/middleware"
	"github.com/rentiva/slot-reservation/internal/model"
	"github.com/rentiva/slot-reservation/internal/repository"
)

// HoldManager is the service surface behind the hold endpoints.
type HoldManager interface {
	Acquire(ctx context.Context, sessionID string, cand model.ReservationCandidate) (*model.SoftHold, error)
	Release(ctx context.Context, sessionID string) (bool, error)
	Current(ctx context.Context, sessionID string) (*model.SoftHold, error)
}

// HoldHandler serves the /v1/holds endpoints.
type HoldHandler struct {
	svc HoldManager
}

// NewHoldHandler constructs the handler.
func NewHoldHandler(svc HoldManager) *HoldHandler {
	return &HoldHandler{svc: svc}
}

// Acquire handles POST /v1/holds.  The body is a candidate as returned by
// the availability endpoint.  Losing the claim race yields 409 with a
// machine-readable reason; the client should re-run availability once and,
// on a second conflict, tell the customer the slot was just taken.
func (h *HoldHandler) Acquire(c echo.Context) error {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body CandidateDTO
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	hold, err := h.svc.Acquire(c.Request().Context(), sessionID, candidateFromDTO(body))
	if err != nil {
		if ve, ok := model.AsValidation(err); ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
		}
		if errors.Is(err, model.ErrHoldConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot just taken", "reason": "conflict"})
		}
		if errors.Is(err, repository.ErrUnitNotFound) || errors.Is(err, repository.ErrResourceNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "candidate is stale", "reason": "conflict"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to acquire hold"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"hold_id":    hold.ID,
		"expires_at": hold.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Release handles DELETE /v1/holds.  Always 200; releasing nothing is not
// an error.
func (h *HoldHandler) Release(c echo.Context) error {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	released, err := h.svc.Release(c.Request().Context(), sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release hold"})
	}
	return c.JSON(http.StatusOK, echo.Map{"released": released})
}

// Current handles GET /v1/holds.  It returns the session's active hold,
// or 404 when none exists.
func (h *HoldHandler) Current(c echo.Context) error {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hold, err := h.svc.Current(c.Request().Context(), sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hold"})
	}
	if hold == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active hold"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hold_id":    hold.ID,
		"unit_id":    hold.UnitID,
		"expires_at": hold.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
