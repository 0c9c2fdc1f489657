package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "finance/internal/delivery/context"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerScheme = "Bearer"

// AuthMiddleware verifies the session token before protected handlers run.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate rejects requests whose bearer token is missing or malformed
// with ErrUnauthorized. A verified token is stored on the context; expiry is
// left to the handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		result := m.tokenSvc.Verify(bearerToken(c.Request().Header.Get(echo.HeaderAuthorization)))
		if !result.Valid() {
			attrs := []slog.Attr{slog.String("token_status", result.Status.String())}
			if result.Err != nil {
				attrs = append(attrs, slog.String("error", result.Err.Error()))
			}
			ctx := c.Request().Context()
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).LogAttrs(ctx, slog.LevelDebug, "Token rejected", attrs...)

			return domainerrors.ErrUnauthorized
		}

		deliverycontext.SetTokenResult(c, result)

		return next(c)
	}
}

// bearerToken extracts the credentials of a "Bearer <token>" header.
// Any other scheme counts as no token.
func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return ""
	}

	return strings.TrimSpace(token)
}
