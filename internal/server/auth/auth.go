package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService is the single-admin auth gate. The credential pair and token
// secret are injected at process start; the server holds no session state and
// re-verifies the token on every protected call.
type AuthService struct {
	config *Config
}

func NewAuthService(config *Config) *AuthService {
	return &AuthService{config: config}
}

// Login exchanges the admin credential pair for a signed, time-limited token.
// There is no rate limiting and no lockout.
func (s *AuthService) Login(username, password string) (string, *Identity, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) == 1
	if !userOK || !passOK {
		return "", nil, ErrInvalidCredentials
	}

	identity := &Identity{
		UserID:   s.config.AdminUsername,
		Username: s.config.AdminUsername,
		Role:     RoleAdmin,
	}

	token, err := newToken(identity, s.config)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, identity, nil
}

// VerifyToken checks signature and expiry and yields the embedded identity.
// Once issued, a token stays valid for its full lifetime; there is no
// revocation list.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims, err := ParseClaims(tokenString, s.config.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}

func newToken(identity *Identity, config *Config) (string, error) {
	var expiryTime *jwt.NumericDate
	if config.TokenExpiry > 0 {
		expiryTime = jwt.NewNumericDate(time.Now().Add(config.TokenExpiry))
	}

	claims := Claims{
		UserID:   identity.UserID,
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   identity.Username,
			Issuer:    config.TokenIssuer,
			ExpiresAt: expiryTime,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.TokenSecret))
}
