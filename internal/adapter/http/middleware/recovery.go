package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flightops/flight-kpi-engine/internal/adapter/http/response"
)

// RecoveryConfig controls what the panic recovery middleware logs.
type RecoveryConfig struct {
	// DisablePrintStack omits the stack trace from the log entry. Useful in
	// production where stacks bloat log volume.
	DisablePrintStack bool
}

// Recover recovers panics with stack traces included in the log entry.
func Recover(log zerolog.Logger) echo.MiddlewareFunc {
	return RecoverWithConfig(log, RecoveryConfig{})
}

// RecoverWithConfig turns a handler panic into a logged 500 response so the
// server keeps serving subsequent requests.
func RecoverWithConfig(log zerolog.Logger, config RecoveryConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					msg := fmt.Sprintf("%v", r)
					if err, ok := r.(error); ok {
						msg = err.Error()
					}

					event := log.Error().
						Str("request_id", GetRequestID(c)).
						Str("panic", msg)
					if !config.DisablePrintStack {
						event = event.Str("stack", string(debug.Stack()))
					}
					event.Msg("Panic recovered")

					// Generic body: the panic value stays in the logs.
					if !c.Response().Committed {
						response.InternalServerError(c)
					}
				}
			}()

			return next(c)
		}
	}
}
