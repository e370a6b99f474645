// Package config reads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Server holds the settings of the serving layer. Flags may override the
// parsed values afterwards.
type Server struct {
	Addr string `env:"CHALKBOARD_ADDR" envDefault:":8080"`

	// RedisAddr selects the Redis-backed explanation library when set;
	// empty means the in-memory library.
	RedisAddr     string `env:"CHALKBOARD_REDIS_ADDR"`
	RedisPassword string `env:"CHALKBOARD_REDIS_PASSWORD"`
	RedisDB       int    `env:"CHALKBOARD_REDIS_DB" envDefault:"0"`

	LogLevel string `env:"CHALKBOARD_LOG_LEVEL" envDefault:"info"`
}

// FromEnv parses the server configuration from environment variables.
func FromEnv() (Server, error) {
	var c Server
	if err := env.Parse(&c); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}
