package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is loaded from an optional config.yaml; environment variables take
// precedence over file values.
type Config struct {
	ListenAddr            string   `yaml:"listen_addr"`
	DatabaseURL           string   `yaml:"database_url"`
	MigrationsDir         string   `yaml:"migrations_dir"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
}

// RequestTimeout is the per-request deadline applied by the timeout middleware.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

const defaultConfigPath = "config.yaml"

func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:            ":8080",
		MigrationsDir:         "migrations",
		RequestTimeoutSeconds: 30,
	}

	if raw, err := os.ReadFile(defaultConfigPath); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.ListenAddr = ":" + v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		cfg.MigrationsDir = v
	}

	return cfg, nil
}
