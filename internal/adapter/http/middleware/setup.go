package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Setup registers the middleware chain on the Echo instance. Order matters:
// RequestID runs first so the logger and recovery middleware can tag their
// entries, and Recover runs innermost so it wraps the handlers themselves.
// Call before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger) {
	SetupWithConfig(e, log, RecoveryConfig{})
}

// SetupWithConfig is Setup with explicit recovery behavior.
func SetupWithConfig(e *echo.Echo, log zerolog.Logger, recovery RecoveryConfig) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(RecoverWithConfig(log, recovery))
}
