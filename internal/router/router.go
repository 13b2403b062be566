package router // package router defines how HTTP routes are registered for the API

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/flight-booking/internal/handler"
	"github.com/iliyamo/flight-booking/internal/middleware"
)

// Configure installs the server-wide middleware chain, the request
// validator and the error handler.  Every request gets an X-Request-ID
// (a UUID unless the client sent one), one access log line and a
// context deadline of timeout.
func Configure(e *echo.Echo, log logrus.FieldLogger, v *handler.Validator, timeout time.Duration) {
	e.HideBanner = true
	e.HidePort = true
	e.Validator = v
	e.HTTPErrorHandler = handler.HTTPErrorHandler(log)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderXRequestID},
		ExposeHeaders: []string{
			echo.HeaderXRequestID, "X-Price-Disclosure", "X-Cache",
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After",
		},
	}))
	e.Use(middleware.Deadline(timeout))
}

// RegisterRoutes registers routes that sit outside /api.  /healthz pings
// db so load balancers stop routing to an instance that lost its store.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}
