package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	// ErrInvalidSignature is returned when a token is malformed, unsigned or tampered with.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired is returned when a token's issuance time is older than the max age.
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries the user identity inside a signed token.
// Tokens embed only the issuance time; the validity window is a server-side
// policy applied at verification, so already-issued tokens honour config
// changes.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HMAC-signed tokens.
type TokenService struct {
	secret []byte
	maxAge time.Duration
}

// NewTokenService creates a token service with the given signing secret and
// maximum token age.
func NewTokenService(secret string, maxAge time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		maxAge: maxAge,
	}
}

// Issue produces a signed token bound to the user ID.
func (s *TokenService) Issue(userID uint) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the signature and issuance age of a token and returns the
// embedded user ID. It fails with ErrInvalidSignature on any tampering or
// malformed input, and ErrTokenExpired when the token is older than the
// configured max age.
func (s *TokenService) Verify(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		return 0, ErrInvalidSignature
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidSignature
	}
	if claims.IssuedAt == nil {
		return 0, ErrInvalidSignature
	}
	if time.Since(claims.IssuedAt.Time) > s.maxAge {
		return 0, ErrTokenExpired
	}

	return claims.UserID, nil
}
