package server

import (
	"fmt"

	"github.com/smlmotors/showroom/internal/server/auth"
	"github.com/smlmotors/showroom/internal/server/blob"
)

const DefaultAddr = "127.0.0.1:8080"

type Config struct {
	HTTP   HTTPConfig    `mapstructure:"http"`
	Blob   blob.S3Config `mapstructure:"blob"`
	Auth   auth.Config   `mapstructure:"auth"`
	DBPath string        `mapstructure:"db_path"`
}

type HTTPConfig struct {
	Addr     string `mapstructure:"addr"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultAddr
	}
	if c.DBPath == "" {
		return fmt.Errorf("`db_path` is required")
	}
	if err := c.Blob.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return nil
}
