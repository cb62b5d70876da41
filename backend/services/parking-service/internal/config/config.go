package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "parkhub/backend/libs/config"
)

// Snapshot backends.
const (
	SnapshotFile     = "file"
	SnapshotPostgres = "postgres"
	SnapshotNone     = "none"
)

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Port string `yaml:"port" env:"PARKING_HTTP_PORT"`
}

// SnapshotConfig selects where the state snapshot is persisted.
type SnapshotConfig struct {
	Backend     string `yaml:"backend" env:"PARKING_SNAPSHOT_BACKEND"`
	Path        string `yaml:"path" env:"PARKING_SNAPSHOT_PATH"`
	PostgresDSN string `yaml:"postgresDsn" env:"PARKING_SNAPSHOT_POSTGRES_DSN"`
}

// RedisConfig holds the optional occupancy cache settings; an empty addr
// disables the cache.
type RedisConfig struct {
	Addr       string `yaml:"addr" env:"PARKING_REDIS_ADDR"`
	Password   string `yaml:"password" env:"PARKING_REDIS_PASSWORD"`
	DB         int    `yaml:"db" env:"PARKING_REDIS_DB"`
	TTLSeconds int    `yaml:"ttlSeconds" env:"PARKING_REDIS_TTL"`
}

// OperatorConfig is one operator account allowed to mutate state.
type OperatorConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"passwordHash"`
}

// AuthConfig holds token settings and operator accounts.
type AuthConfig struct {
	JWTSecret       string           `yaml:"jwtSecret" env:"PARKING_JWT_SECRET"`
	TokenTTLMinutes int              `yaml:"tokenTtlMinutes" env:"PARKING_TOKEN_TTL_MINUTES"`
	Operators       []OperatorConfig `yaml:"operators" env:"-"`
}

// Config defines parking service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
}

// Load reads configuration via the shared helper and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{Port: "8080"},
		Snapshot: SnapshotConfig{
			Backend: SnapshotFile,
			Path:    "parkhub-state.json",
		},
		Redis: RedisConfig{TTLSeconds: 86400},
		Auth:  AuthConfig{TokenTTLMinutes: 60},
	}

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	switch cfg.Snapshot.Backend {
	case SnapshotFile:
		if strings.TrimSpace(cfg.Snapshot.Path) == "" {
			return nil, errors.New("config: snapshot path required for file backend")
		}
	case SnapshotPostgres:
		if strings.TrimSpace(cfg.Snapshot.PostgresDSN) == "" {
			return nil, errors.New("config: postgres dsn required for postgres backend")
		}
	case SnapshotNone:
	default:
		return nil, fmt.Errorf("config: unknown snapshot backend %q", cfg.Snapshot.Backend)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// OccupiedTTL returns the cache ttl as a duration.
func (c *Config) OccupiedTTL() time.Duration {
	if c.Redis.TTLSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

// TokenTTL returns the operator token lifetime.
func (c *Config) TokenTTL() time.Duration {
	if c.Auth.TokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}
