// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"finance/internal/domain/entity"
	"finance/internal/domain/service"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by a successful sign-up or login.
// User never carries anything the client should not see; the hash is dropped on serialization.
type AuthOutput struct {
	Token string
	User  *entity.User
}

// AuthUsecase defines the account and session operations the delivery layer depends on.
type AuthUsecase interface {
	// SignUp registers a new account and issues a session token for it.
	SignUp(ctx context.Context, input SignUpInput) (*AuthOutput, error)

	// Login checks the credentials and issues a session token.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// CheckStatus reports whether a verified token still describes a live session.
	// A zero result means no token was verified for the request.
	CheckStatus(ctx context.Context, result service.TokenResult) error
}
