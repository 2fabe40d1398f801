// Package config loads the client configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environment variable prefix for every setting.
const EnvPrefix = "CUBEWORLD_"

var (
	ErrInvalidSize     = errors.New("config: window dimensions must be positive")
	ErrInvalidPort     = errors.New("config: port must be in the range 1-65535")
	ErrMissingAddress  = errors.New("config: server address is required")
	ErrInvalidClipping = errors.New("config: screen near must be positive and smaller than screen depth")
)

type Config struct {
	// Network peer.
	Address     string        `env:"SERVER_ADDRESS" envDefault:"155.248.215.180"`
	Port        int           `env:"SERVER_PORT" envDefault:"7000"`
	Path        string        `env:"SERVER_PATH" envDefault:"/ws"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`

	// Window and display.
	Title       string  `env:"TITLE" envDefault:"cubeworld"`
	Width       int     `env:"WIDTH" envDefault:"800"`
	Height      int     `env:"HEIGHT" envDefault:"600"`
	FullScreen  bool    `env:"FULL_SCREEN" envDefault:"false"`
	VSync       bool    `env:"VSYNC" envDefault:"true"`
	ScreenDepth float32 `env:"SCREEN_DEPTH" envDefault:"1000"`
	ScreenNear  float32 `env:"SCREEN_NEAR" envDefault:"0.1"`

	// Diagnostics.
	LogLevel     string `env:"LOG_LEVEL" envDefault:"notice"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// Load the configuration from the supplied variables instead of the process
// environment. Keys must include the prefix.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values no subsystem could start with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidSize
	}
	if c.Address == "" {
		return ErrMissingAddress
	}
	if c.Port <= 0 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.ScreenNear <= 0 || c.ScreenNear >= c.ScreenDepth {
		return ErrInvalidClipping
	}
	return nil
}

// Endpoint returns the peer address in host:port form.
func (c Config) Endpoint() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}
