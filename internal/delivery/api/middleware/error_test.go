package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "finance/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		method   string
		wantCode int
		wantBody string
	}{
		{
			name:     "domain error",
			err:      domainerrors.ErrEmailTaken,
			wantCode: http.StatusConflict,
			wantBody: `{"status":409,"message":"Email is taken"}`,
		},
		{
			name:     "wrapped domain error keeps its message",
			err:      errors.Wrap(domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch"), "login"),
			wantCode: http.StatusUnauthorized,
			wantBody: `{"status":401,"message":"The credentials are invalid"}`,
		},
		{
			name:     "database error",
			err:      domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "insert"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":400,"message":"Database execution failed"}`,
		},
		{
			name:     "echo error keeps status",
			err:      echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			wantCode: http.StatusMethodNotAllowed,
			wantBody: `{"status":405,"message":"Method Not Allowed"}`,
		},
		{
			name:     "echo error without string message",
			err:      &echo.HTTPError{Code: http.StatusRequestEntityTooLarge, Message: errors.New("too big")},
			wantCode: http.StatusRequestEntityTooLarge,
			wantBody: `{"status":413,"message":"Request Entity Too Large"}`,
		},
		{
			name:     "unknown error is a bad request with its message",
			err:      errors.New("something odd"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":400,"message":"something odd"}`,
		},
	}

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestErrorMiddleware_SkipsCommittedResponse(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusAccepted)

	m.HandleHTTPError(errors.New("late"), c)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestErrorMiddleware_HeadHasNoBody(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)

	m.HandleHTTPError(domainerrors.ErrUnauthorized, c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())
}
