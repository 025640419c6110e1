package config

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v9"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBDriver               string `env:"DB_DRIVER" envDefault:"mysql"`
	DBUser                 string `env:"DB_USER"`
	DBPassword             string `env:"DB_PASSWORD"`
	DBHost                 string `env:"DB_HOST"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`
	DatabaseURL            string `env:"DATABASE_URL"` // postgres only; overrides the DB_* fields
	DBMaxOpenConns         int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns         int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`

	CORSOriginSuffixes []string `env:"CORS_ORIGIN_SUFFIXES" envSeparator:"," envDefault:"vercel.app"`

	GitSHA    string `env:"GIT_SHA" envDefault:"dev"`
	BuildTime string `env:"BUILD_TIME"`

	// RewardSeed makes claim rewards reproducible when non-zero.
	RewardSeed uint64 `env:"REWARD_SEED" envDefault:"0"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	return &cfg, nil
}

// Validate checks the keys the selected driver needs to open a connection.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL:
		if c.DBUser == "" || c.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required for mysql")
		}
		if c.DBHost == "" && c.InstanceConnectionName == "" {
			return errors.New("DB_HOST or INSTANCE_CONNECTION_NAME is required for mysql")
		}
	case DriverPostgres:
		if c.DatabaseURL != "" {
			return nil
		}
		if c.DBUser == "" || c.DBName == "" || c.DBHost == "" {
			return errors.New("DATABASE_URL or DB_USER, DB_HOST and DB_NAME are required for postgres")
		}
	default:
		return errors.New("unsupported DB_DRIVER " + c.DBDriver)
	}
	return nil
}
