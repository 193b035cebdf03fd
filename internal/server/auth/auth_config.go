package auth

import (
	"fmt"
	"time"
)

type Config struct {
	AdminUsername string        `mapstructure:"admin_username"`
	AdminPassword string        `mapstructure:"admin_password"`
	TokenIssuer   string        `mapstructure:"token_issuer"`
	TokenSecret   string        `mapstructure:"token_secret"`
	TokenExpiry   time.Duration `mapstructure:"token_expiry"`
}

const DefaultTokenExpiry = 24 * time.Hour

func (c *Config) Validate() error {
	if c.AdminUsername == "" {
		return fmt.Errorf("auth `admin_username` is required")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("auth `admin_password` is required")
	}
	if c.TokenSecret == "" {
		return fmt.Errorf("auth `token_secret` is required")
	}
	if c.TokenExpiry <= 0 {
		c.TokenExpiry = DefaultTokenExpiry
	}
	return nil
}
