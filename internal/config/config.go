// Package config reads the server's settings from the environment.
//
// cmd/server loads an optional .env file first (github.com/joho/godotenv),
// so every setting can come from either place; real environment variables
// win over .env entries.
//
//	PORT          listen port on 0.0.0.0 (default 8000)
//	DB_DRIVER     "sqlite" (default) or "postgres"
//	DB_PATH       SQLite file (default data/venues.db)
//	DATABASE_URL  Postgres connection string, required for DB_DRIVER=postgres
//	FLASH_SECRET  key that signs flash cookies, at least 16 characters
//	LOG_LEVEL     debug, info (default), warn or error
//	APP_ENV       development (default) or production
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultPort   = 8000
	defaultDBPath = "data/venues.db"
	minSecretLen  = 16
)

type Config struct {
	Port        int
	Env         string
	DBDriver    string
	DBPath      string
	DatabaseURL string
	FlashSecret string
	LogLevel    slog.Level

	// GeneratedSecret is set when FLASH_SECRET was empty and a random one
	// was made for this process. Flash cookies then do not survive a
	// restart; main logs a warning.
	GeneratedSecret bool
}

// Load reads the process environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:     defaultPort,
		Env:      "development",
		DBDriver: DriverSQLite,
		DBPath:   defaultDBPath,
		LogLevel: slog.LevelInfo,
	}

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("config: invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := strings.TrimSpace(getenv("APP_ENV")); v != "" {
		switch v {
		case "development", "production":
			cfg.Env = v
		default:
			return Config{}, fmt.Errorf("config: invalid APP_ENV %q (want development or production)", v)
		}
	}

	if v := strings.ToLower(strings.TrimSpace(getenv("DB_DRIVER"))); v != "" {
		switch v {
		case DriverSQLite, DriverPostgres:
			cfg.DBDriver = v
		default:
			return Config{}, fmt.Errorf("config: invalid DB_DRIVER %q (want sqlite or postgres)", v)
		}
	}

	if v := strings.TrimSpace(getenv("DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	cfg.DatabaseURL = strings.TrimSpace(getenv("DATABASE_URL"))
	if cfg.DBDriver == DriverPostgres && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("config: DATABASE_URL is required when DB_DRIVER=postgres")
	}

	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("config: invalid LOG_LEVEL %q", v)
		}
	}

	cfg.FlashSecret = getenv("FLASH_SECRET")
	switch {
	case cfg.FlashSecret == "":
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.FlashSecret = secret
		cfg.GeneratedSecret = true
	case len(cfg.FlashSecret) < minSecretLen:
		return Config{}, fmt.Errorf("config: FLASH_SECRET must be at least %d characters", minSecretLen)
	}

	return cfg, nil
}

// Addr is the listen address. The server binds every interface.
func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("config: generating flash secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
