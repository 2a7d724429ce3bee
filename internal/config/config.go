package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort          = "8080"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultStaffTokenTTL = "12h"
	defaultMypageTTL     = "30m"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret        string
	StaffTokenTTL    time.Duration
	CustomerTokenTTL time.Duration

	// FieldCipherKey protects identity fields at rest. Absence is a fatal
	// startup condition, never a silent fallback to plaintext.
	FieldCipherKey string

	// AMQPURL is optional; empty disables notification dispatch.
	AMQPURL string

	// ChromePath overrides headless-Chrome autodetection for review scraping.
	ChromePath string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.FieldCipherKey = strings.TrimSpace(os.Getenv("FIELD_CIPHER_KEY"))
	cfg.AMQPURL = strings.TrimSpace(os.Getenv("AMQP_URL"))
	cfg.ChromePath = strings.TrimSpace(os.Getenv("CHROME_PATH"))

	var err error
	cfg.StaffTokenTTL, err = parseDurationEnv("STAFF_TOKEN_TTL", defaultStaffTokenTTL)
	if err != nil {
		return nil, err
	}
	cfg.CustomerTokenTTL, err = parseDurationEnv("CUSTOMER_TOKEN_TTL", defaultMypageTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.FieldCipherKey == "" {
		return fmt.Errorf("FIELD_CIPHER_KEY must be set")
	}
	if cfg.StaffTokenTTL <= 0 || cfg.CustomerTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be > 0")
	}
	if IsProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

// IsProdLike reports whether the environment should run with production
// settings (release gin mode, strict secrets).
func IsProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}
