package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	AppEnv         string
	BaseURL        string
	LogLevel       string
	ContentDir     string
	RedisURL       string
	VisitorSecret  string
	SessionTTL     time.Duration
	DeviceTTL      time.Duration
	ResendAPIKey   string
	ResendBaseURL  string
	ContactFrom    string
	ContactTo      []string
	Signature      string
	PageSize       int
	RevealDelay    time.Duration
	Timezone       string
	AllowedOrigins []string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "file:db.sqlite"),
		AppEnv:         getEnv("APP_ENV", "local"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ContentDir:     getEnv("CONTENT_DIR", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		VisitorSecret:  getEnv("VISITOR_SECRET", "secret"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 30*time.Minute),
		DeviceTTL:      getEnvDuration("DEVICE_TTL", 365*24*time.Hour),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		ResendBaseURL:  getEnv("RESEND_BASE_URL", "https://api.resend.com"),
		ContactFrom:    getEnv("CONTACT_FROM", "Committee <onboarding@resend.dev>"),
		ContactTo:      getEnvList("CONTACT_TO", "info@example.org"),
		Signature:      getEnv("CONTACT_SIGNATURE", "The Committee team"),
		PageSize:       getEnvInt("PAGE_SIZE", 6),
		RevealDelay:    getEnvDuration("REVEAL_DELAY", 500*time.Millisecond),
		Timezone:       getEnv("TIMEZONE", "Europe/Saratov"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", "*"),
	}
}

// Validate reports every setting that cannot be used as given.
func (c *Config) Validate() error {
	var errs []error
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, fmt.Errorf("PORT: invalid port %q", c.Port))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("PAGE_SIZE: must be positive, got %d", c.PageSize))
	}
	if c.RevealDelay < 0 {
		errs = append(errs, errors.New("REVEAL_DELAY: must not be negative"))
	}
	if len(c.ContactTo) == 0 {
		errs = append(errs, errors.New("CONTACT_TO: at least one address is required"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	if c.AppEnv != "local" && c.VisitorSecret == "secret" {
		errs = append(errs, errors.New("VISITOR_SECRET: the default secret is only allowed with APP_ENV=local"))
	}
	return errors.Join(errs...)
}

// Location is the time zone used to decide which day "today" is.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

// getEnvList splits a comma separated value, dropping empty entries.
func getEnvList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
