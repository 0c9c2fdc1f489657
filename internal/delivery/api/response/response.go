// Package response renders the JSON envelope shared by every endpoint:
// {"status": <http status>, "message": "...", "data": ...}.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse is the envelope for successful responses. Data is always
// present, and serializes as null when there is nothing to return.
type SuccessResponse struct {
	Status int `json:"status"`
	Data   any `json:"data"`
}

// ErrorResponse is the envelope for failed responses.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Status: statusCode,
		Data:   data,
	})
}

// OK returns a 200 response
func OK(c echo.Context, data any) error {
	return Success(c, http.StatusOK, data)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorResponse{
		Status:  statusCode,
		Message: message,
	})
}
