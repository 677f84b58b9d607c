// Package middleware contains reusable HTTP middleware: session token
// validation and the Redis rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionIDKey is the echo context key the session middleware populates.
const SessionIDKey = "session_id"

// SessionAuth validates a Bearer session token and injects its subject as
// the session ID.  Handlers downstream read it via SessionID(c).  Tokens
// are issued by POST /v1/sessions with the same secret.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token has no session"})
			}
			c.Set(SessionIDKey, sub)
			return next(c)
		}
	}
}

// SessionID extracts the authenticated session ID from the context; empty
// when the session middleware did not run.
func SessionID(c echo.Context) string {
	if v, ok := c.Get(SessionIDKey).(string); ok {
		return v
	}
	return ""
}
