// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rentiva/slot-reservation/internal/config"
	"github.com/rentiva/slot-reservation/internal/handler"
	"github.com/rentiva/slot-reservation/internal/middleware"
)

// Deps collects everything the route table needs.
type Deps struct {
	Sessions      *handler.SessionHandler
	Availability  *handler.AvailabilityHandler
	Holds         *handler.HoldHandler
	Sweep         *handler.SweepHandler
	SessionSecret string
	RateLimit     config.RateLimitConfig
	Redis         *redis.Client
}

// Register sets up the full route table.  Session issuance and the
// catalog are public; everything touching holds or availability requires
// a session token and passes the rate limiter.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)
	e.GET("/v1/windows", handler.Windows)
	e.POST("/v1/sessions", d.Sessions.Create)

	v1 := e.Group("/v1")
	v1.Use(middleware.SessionAuth(d.SessionSecret))
	v1.Use(middleware.RateLimit(d.RateLimit, d.Redis))
	v1.POST("/availability", d.Availability.Check)
	v1.POST("/holds", d.Holds.Acquire)
	v1.GET("/holds", d.Holds.Current)
	v1.DELETE("/holds", d.Holds.Release)

	// Operational surface; same sweep pass as the background ticker.
	e.POST("/v1/sweep", d.Sweep.Run)
}
