package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendMySQL  Backend = "mysql"
)

// Config is read from the environment. With nothing set the ledgers live
// in process memory and logging stays quiet.
type Config struct {
	Backend    Backend       `env:"SHOPCART_BACKEND" envDefault:"memory"`
	RedisAddr  string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SessionTTL time.Duration `env:"SHOPCART_SESSION_TTL" envDefault:"24h"`
	MySQLDSN   string        `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/shopcart?parseTime=true"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat  string        `env:"LOG_FORMAT" envDefault:"console"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
		if c.SessionTTL <= 0 {
			return fmt.Errorf("SHOPCART_SESSION_TTL must be positive")
		}
	case BackendMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("MYSQL_DSN is required for the mysql backend")
		}
	default:
		return fmt.Errorf("invalid SHOPCART_BACKEND: %s (must be memory/redis/mysql)", c.Backend)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be console/json)", c.LogFormat)
	}
	return nil
}
