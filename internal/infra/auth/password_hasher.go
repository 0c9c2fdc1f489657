// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"strings"

	"finance/config"
	"finance/internal/domain/service"
	"finance/internal/errors"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

const (
	argon2idPrefix = "$argon2id$"

	// bcryptMaxKeyBytes is how much of a password bcrypt's key schedule reads.
	bcryptMaxKeyBytes = 72
)

// passwordHasher implements service.PasswordHasher with bcrypt or argon2id.
// New hashes use the configured algorithm; Check accepts either, recognised by prefix.
type passwordHasher struct {
	algorithm   string
	bcryptCost  int
	argonParams *argon2id.Params
	dummyHash   string
}

// NewPasswordHasher builds the hasher selected in the auth configuration.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	switch cfg.PasswordAlgorithm() {
	case config.PasswordAlgorithmArgon2id:
		return NewArgon2idHasher(argon2id.DefaultParams)
	default:
		return NewBcryptHasher(cfg.BcryptCost())
	}
}

// NewBcryptHasher returns a hasher producing bcrypt hashes with the given cost.
func NewBcryptHasher(cost int) (service.PasswordHasher, error) {
	return newPasswordHasher(&passwordHasher{
		algorithm:  config.PasswordAlgorithmBcrypt,
		bcryptCost: cost,
	})
}

// NewArgon2idHasher returns a hasher producing argon2id hashes with the given parameters.
func NewArgon2idHasher(params *argon2id.Params) (service.PasswordHasher, error) {
	return newPasswordHasher(&passwordHasher{
		algorithm:   config.PasswordAlgorithmArgon2id,
		bcryptCost:  bcrypt.DefaultCost,
		argonParams: params,
	})
}

func newPasswordHasher(h *passwordHasher) (service.PasswordHasher, error) {
	dummy, err := h.Hash(rand.Text())
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare dummy hash")
	}
	h.dummyHash = dummy

	return h, nil
}

// Hash generates a salted hash from a plaintext password.
// Both algorithms draw a fresh random salt per call.
func (h *passwordHasher) Hash(password string) (string, error) {
	if h.algorithm == config.PasswordAlgorithmArgon2id {
		hash, err := argon2id.CreateHash(password, h.argonParams)

		return hash, errors.Wrap(err, "argon2id hash")
	}

	bytes, err := bcrypt.GenerateFromPassword(bcryptKey(password), h.bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a stored hash in constant time.
func (h *passwordHasher) Check(password, hash string) bool {
	switch {
	case strings.HasPrefix(hash, argon2idPrefix):
		return checkArgon2id(password, hash)
	case strings.HasPrefix(hash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(hash), bcryptKey(password)) == nil
	default:
		return false
	}
}

// DummyHash returns the hash of a random secret generated at construction.
func (h *passwordHasher) DummyHash() string {
	return h.dummyHash
}

// bcryptKey cuts the password to the bytes bcrypt reads, so long multibyte
// passwords hash instead of failing and verify against existing bcrypt hashes.
func bcryptKey(password string) []byte {
	if len(password) > bcryptMaxKeyBytes {
		return []byte(password[:bcryptMaxKeyBytes])
	}

	return []byte(password)
}

func checkArgon2id(password, hash string) (match bool) {
	// argon2 panics on zero parallelism, which a tampered hash can encode.
	defer func() {
		if recover() != nil {
			match = false
		}
	}()

	ok, err := argon2id.ComparePasswordAndHash(password, hash)

	return err == nil && ok
}
