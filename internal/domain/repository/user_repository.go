// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"finance/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the credential store operations.
// Email uniqueness is enforced by the store itself: Create must report a
// duplicate as domainerrors.ErrEmailTaken even when ExistsByEmail raced it.
type UserRepository interface {
	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether an account with the email is already registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user and fills in the store-assigned ID.
	Create(ctx context.Context, user *entity.User) error
}
