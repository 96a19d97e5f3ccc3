// Package middleware contains the HTTP middleware for the delivery layer.
package middleware

import (
	"fmt"
	"log/slog"

	"roster/config"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware is the single classification point for failures reaching
// the HTTP boundary. Whatever a handler or service returns, exactly one
// structured error body leaves here, and raw internal error text only when
// debug mode is explicitly on.
type ErrorMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewErrorMiddleware creates a new error handling middleware.
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Classified application errors carry their own status, label and field.
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= 500 {
			m.logger.Error("Request failed",
				slog.String("path", c.Request().URL.Path),
				slog.String("method", c.Request().Method),
				slog.String("code", appErr.ErrorCode()),
				slog.Any("error", err),
			)
		}

		_ = response.AppError(c, appErr, m.debugDetail(err))

		return
	}

	// Echo's own errors (unknown route, malformed body, oversized payload).
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		base := domainerrors.NewBaseError(
			httpErr.Code,
			"HTTP_ERROR",
			"Request failed",
			fmt.Sprintf("%v", httpErr.Message),
			"general",
		)
		_ = response.AppError(c, base, m.debugDetail(err))

		return
	}

	// Anything unclassified funnels to InternalFailure: full detail to the
	// server log, a generic message to the client.
	m.logger.Error("Unhandled error",
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.Any("error", err),
	)

	_ = response.AppError(c, domainerrors.ErrInternal, m.debugDetail(err))
}

// debugDetail returns the internal error text when debug mode is on, and
// nothing otherwise.
func (m *ErrorMiddleware) debugDetail(err error) string {
	if !m.debug {
		return ""
	}

	return err.Error()
}
