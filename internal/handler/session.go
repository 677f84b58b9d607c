package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rentiva/slot-reservation/internal/utils"
)

// SessionHandler issues session tokens for the booking wizard.
type SessionHandler struct {
	secret string
	ttl    time.Duration
}

// NewSessionHandler constructs the handler.  ttl bounds how long one
// wizard session can keep claiming holds.
func NewSessionHandler(secret string, ttl time.Duration) *SessionHandler {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionHandler{secret: secret, ttl: ttl}
}

// Create handles POST /v1/sessions: mint a fresh session ID and return it
// with its signed token.
func (h *SessionHandler) Create(c echo.Context) error {
	sessionID := uuid.NewString()
	tok, err := utils.NewSessionToken(h.secret, sessionID, h.ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue session"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"session_id": sessionID,
		"token":      tok.Token,
		"expires_at": tok.Exp.Format(time.RFC3339),
	})
}
