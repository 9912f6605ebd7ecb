package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `env:"HTTP_HOST" envDefault:""`
	Port            int           `env:"HTTP_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	// Type is "memory" or "redis"
	Type         string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL     string `env:"REDIS_URL"`
	RedisPool    int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisMinIdle int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
}

// MatchConfig holds match session tunables
type MatchConfig struct {
	RestartVoteTicks    int           `env:"RESTART_VOTE_TICKS" envDefault:"10"`
	RestartTickInterval time.Duration `env:"RESTART_TICK_INTERVAL" envDefault:"1s"`
	PersistTimeout      time.Duration `env:"PERSIST_TIMEOUT" envDefault:"5s"`
}

// AuthConfig holds session settings
type AuthConfig struct {
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"24h"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Config is the full application configuration read from the environment
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Match   MatchConfig
	Auth    AuthConfig
	Log     LogConfig
}

// Load parses the full configuration from the environment
func Load() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
