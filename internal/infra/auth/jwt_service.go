package auth

import (
	"math"
	"time"

	"finance/config"
	"finance/internal/domain/service"
	"finance/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretLength = 5

var errMissingClaim = errors.New("token payload is incomplete")

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	svc, err := newJWTService(cfg.SecretKey.JWT, time.Now)
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func newJWTService(secret string, now func() time.Time) (*jwtService, error) {
	if len(secret) < minSecretLength {
		return nil, errors.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}

	return &jwtService{
		secret: []byte(secret),
		now:    now,
	}, nil
}

// Issue creates a signed token for userID, valid for service.TokenTTL from now.
func (s *jwtService) Issue(userID int64) (string, error) {
	now := s.now()
	claims := service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the signature and that iat, nbf, exp and userId are present and numeric.
// Expiry is left to IsExpired so callers can tell an expired session from a forged one.
func (s *jwtService) Verify(tokenString string) service.TokenResult {
	if tokenString == "" {
		return service.TokenResult{Status: service.TokenMissing}
	}

	mapClaims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, mapClaims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return malformed(errors.Wrap(err, "failed to parse token"))
	}

	claims, err := claimsFromMap(mapClaims)
	if err != nil {
		return malformed(err)
	}

	if claims.NotBefore.After(s.now()) {
		return malformed(errors.New("token is not valid yet"))
	}

	return service.TokenResult{Status: service.TokenValid, Claims: claims}
}

// IsExpired reports whether now is strictly after the expiry second.
// A token is still accepted during the second it expires.
func (s *jwtService) IsExpired(claims *service.Claims, now time.Time) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return true
	}

	return now.Unix() > claims.ExpiresAt.Unix()
}

func malformed(err error) service.TokenResult {
	return service.TokenResult{Status: service.TokenMalformed, Err: err}
}

func claimsFromMap(m jwt.MapClaims) (*service.Claims, error) {
	iat, err := numericClaim(m, "iat")
	if err != nil {
		return nil, err
	}
	nbf, err := numericClaim(m, "nbf")
	if err != nil {
		return nil, err
	}
	exp, err := numericClaim(m, "exp")
	if err != nil {
		return nil, err
	}
	userID, err := numericClaim(m, "userId")
	if err != nil {
		return nil, err
	}

	return &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Unix(iat, 0)),
			NotBefore: jwt.NewNumericDate(time.Unix(nbf, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(exp, 0)),
		},
	}, nil
}

// numericClaim reads an integral JSON number; anything else is a structural error.
func numericClaim(m jwt.MapClaims, key string) (int64, error) {
	raw, ok := m[key]
	if !ok {
		return 0, errors.Wrapf(errMissingClaim, "missing %q", key)
	}

	value, ok := raw.(float64)
	if !ok || value != math.Trunc(value) || math.IsInf(value, 0) {
		return 0, errors.Wrapf(errMissingClaim, "%q is not an integer", key)
	}

	return int64(value), nil
}
