package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds everything the server and CLI read from the environment.
type Config struct {
	AppEnv string
	Port   string

	DBDriver   string
	PGHost     string
	PGPort     string
	PGUser     string
	PGDB       string
	PGPassword string
	SQLitePath string

	CacheBackend  string
	RedisHost     string
	RedisPort     string
	RedisPassword string

	FilesRoot       string
	DefaultDomain   string
	Secret          string
	InstallSettings string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:          getenv("APP_ENV", "development"),
		Port:            getenv("PORT", "8080"),
		DBDriver:        getenv("DB_DRIVER", DriverPostgres),
		PGHost:          getenv("PG_HOST", "localhost"),
		PGPort:          getenv("PG_PORT", "5432"),
		PGUser:          os.Getenv("PG_USER"),
		PGDB:            os.Getenv("PG_DB"),
		PGPassword:      os.Getenv("PG_PASSWORD"),
		SQLitePath:      getenv("SQLITE_PATH", "transporter.db"),
		CacheBackend:    getenv("CACHE_BACKEND", CacheMemory),
		RedisHost:       getenv("REDIS_HOST", "localhost"),
		RedisPort:       getenv("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		FilesRoot:       getenv("FILES_ROOT", "files"),
		DefaultDomain:   getenv("DEFAULT_DOMAIN", "https://example.com"),
		Secret:          os.Getenv("TRANSPORTER_SECRET"),
		InstallSettings: os.Getenv("INSTALL_SETTINGS"),
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getenv("RATE_LIMIT_BURST", "40")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.CacheBackend {
	case CacheMemory, CacheRedis:
	default:
		return nil, fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.CacheBackend)
	}

	return cfg, nil
}

// PostgresDSN builds the connection string the same way for sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// RedisAddr is host:port for go-redis.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
