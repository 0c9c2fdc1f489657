package handler

import (
	"encoding/json"
	"io"

	"finance/internal/delivery/api/response"
	deliverycontext "finance/internal/delivery/context"
	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/errors"
	"finance/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
}

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	authUC usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
	}
}

// SignUpRequest represents the request body for creating an account
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=5,max=70"`
	FullName string `json:"fullName" validate:"required,min=1,max=50"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=5,max=70"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// AuthResponse carries the session token and the account it belongs to.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// SignUp handles account registration
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.SignUp(c.Request().Context(), usecase.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}

	return response.OK(c, toAuthResponse(output))
}

// Login handles credential checks and token issuance
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.OK(c, toAuthResponse(output))
}

// CheckStatus reports whether the caller's session token is still live.
// It must run behind AuthMiddleware.Authenticate.
func (h *AuthHandler) CheckStatus(c echo.Context) error {
	result, ok := deliverycontext.GetTokenResult(c)
	if !ok {
		return domainerrors.ErrNotLoggedIn
	}

	if err := h.authUC.CheckStatus(c.Request().Context(), result); err != nil {
		return err
	}

	return response.OK(c, nil)
}

// bindAndValidate decodes the JSON body into req and validates it. A body
// that is not JSON at all keeps echo's 400; a body of the wrong shape or a
// non-JSON content type is a validation failure.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		if _, ok := errors.AsType[*json.SyntaxError](err); ok || errors.Is(err, io.ErrUnexpectedEOF) {
			return err
		}

		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return c.Validate(req)
}

func toAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		Token: output.Token,
		User:  toUserResponse(output.User),
	}
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
}
