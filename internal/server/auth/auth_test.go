package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestAuthConfig() *Config {
	return &Config{
		AdminUsername: "admin",
		AdminPassword: "admin123",
		TokenIssuer:   "showroom-test",
		TokenSecret:   "test-secret",
		TokenExpiry:   24 * time.Hour,
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := getTestAuthConfig()
	assert.NoError(t, cfg.Validate())

	cfg.TokenSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = getTestAuthConfig()
	cfg.AdminPassword = ""
	assert.Error(t, cfg.Validate())

	cfg = getTestAuthConfig()
	cfg.TokenExpiry = 0
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultTokenExpiry, cfg.TokenExpiry)
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(getTestAuthConfig())

	token, identity, err := svc.Login("admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", identity.Username)
	assert.Equal(t, RoleAdmin, identity.Role)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "showroom-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(getTestAuthConfig())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"wrong username", "root", "admin123"},
		{"both wrong", "root", "toor"},
		{"empty pair", "", ""},
		{"password as username", "admin123", "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, identity, err := svc.Login(tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, token)
			assert.Nil(t, identity)
		})
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	cfg := getTestAuthConfig()
	cfg.TokenExpiry = -time.Minute
	svc := NewAuthService(cfg)

	token, _, err := svc.Login("admin", "admin123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	svc := NewAuthService(getTestAuthConfig())

	otherCfg := getTestAuthConfig()
	otherCfg.TokenSecret = "another-secret"
	other := NewAuthService(otherCfg)

	token, _, err := other.Login("admin", "admin123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(getTestAuthConfig())

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTokenLifetimeIs24Hours(t *testing.T) {
	svc := NewAuthService(getTestAuthConfig())

	token, _, err := svc.Login("admin", "admin123")
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 24*time.Hour, lifetime)
}
