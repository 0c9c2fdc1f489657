package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of a session token.
const TokenTTL = 24 * time.Hour

// Claims is the session token payload.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// TokenStatus tags the outcome of verifying a token.
type TokenStatus int

const (
	// TokenMissing means no token was presented.
	TokenMissing TokenStatus = iota
	// TokenMalformed means the signature or payload did not check out.
	TokenMalformed
	// TokenValid means the signature verified and every payload field is present.
	TokenValid
)

// String returns a lowercase name for logs.
func (s TokenStatus) String() string {
	switch s {
	case TokenMissing:
		return "missing"
	case TokenMalformed:
		return "malformed"
	case TokenValid:
		return "valid"
	default:
		return "unknown"
	}
}

// TokenResult is the tagged result of TokenService.Verify.
// Claims is set only when Status is TokenValid; Err explains a malformed token.
type TokenResult struct {
	Status TokenStatus
	Claims *Claims
	Err    error
}

// Valid reports whether the token verified.
func (r TokenResult) Valid() bool {
	return r.Status == TokenValid && r.Claims != nil
}

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	// Issue signs a token for userID valid from now until now+TokenTTL.
	Issue(userID int64) (string, error)

	// Verify checks the signature and payload structure. It does not judge expiry.
	Verify(tokenString string) TokenResult

	// IsExpired reports whether now is strictly past the token's expiry second.
	IsExpired(claims *Claims, now time.Time) bool
}
