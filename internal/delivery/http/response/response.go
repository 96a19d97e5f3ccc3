// Package response renders the boundary JSON shapes: bare sanitized payloads
// on success, the structured error body on failure.
package response

import (
	"time"

	domainerrors "roster/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the single error shape every failure renders to.
// Messages is only populated for boundary validation failures (one entry per
// violated field rule); Debug carries internal error text and is only set
// when the debug flag is enabled.
type ErrorBody struct {
	StatusCode int      `json:"statusCode"`
	Error      string   `json:"error"`
	Code       string   `json:"code,omitempty"`
	Message    string   `json:"message"`
	Messages   []string `json:"messages,omitempty"`
	Field      string   `json:"field"`
	Timestamp  string   `json:"timestamp"`
	Debug      string   `json:"debug,omitempty"`
}

// JSON writes a success payload as-is with the given status code.
func JSON(c echo.Context, statusCode int, payload any) error {
	return c.JSON(statusCode, payload)
}

// AppError renders a classified application error. debugDetail is included
// only when non-empty; callers gate it on the debug configuration flag.
func AppError(c echo.Context, appErr domainerrors.AppError, debugDetail string) error {
	body := ErrorBody{
		StatusCode: appErr.HTTPCode(),
		Error:      appErr.Label(),
		Code:       appErr.ErrorCode(),
		Message:    appErr.Message(),
		Field:      appErr.Field(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Debug:      debugDetail,
	}

	if vErr, ok := appErr.(*domainerrors.ValidationError); ok {
		body.Messages = vErr.Messages()
	}

	return c.JSON(appErr.HTTPCode(), body)
}
