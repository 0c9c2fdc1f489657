package middleware

import (
	"log/slog"
	"net/http"

	"finance/internal/delivery/api/response"
	deliverycontext "finance/internal/delivery/context"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is echo's HTTPErrorHandler. Domain errors render their own
// status and message, echo errors keep their status, and anything else is a
// 400 carrying the error message.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	req := c.Request()
	logger := deliverycontext.GetLoggerOrDefault(req.Context(), m.logger)
	attrs := []slog.Attr{
		slog.String("error", err.Error()),
		slog.String("path", req.URL.Path),
		slog.String("method", req.Method),
	}

	status, message := http.StatusBadRequest, err.Error()

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		status, message = appErr.HTTPCode(), appErr.Message()
		attrs = append(attrs, slog.String("code", appErr.ErrorCode()))
	} else if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		status, message = httpErr.Code, http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.LogAttrs(req.Context(), level, "Request failed", append(attrs, slog.Int("status", status))...)

	if req.Method == http.MethodHead {
		_ = c.NoContent(status)

		return
	}

	_ = response.Error(c, status, message)
}
