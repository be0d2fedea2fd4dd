package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Development origins always accepted by CORS.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Config keeps runtime settings for the planner.
type Config struct {
	DatabaseURL     string
	Port            int
	JWTSecret       string
	TokenTTL        time.Duration
	LogLevel        string
	LogFile         string
	DisplayTimezone string
	AllowedOrigins  []string
}

// Load reads .env (when present) and the environment, applying defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_url", "instime.db")
	v.SetDefault("port", 6060)
	v.SetDefault("token_ttl", 168*time.Hour)
	v.SetDefault("log_level", "info")
	v.SetDefault("display_timezone", "Local")

	cfg := &Config{
		DatabaseURL:     strings.TrimSpace(v.GetString("database_url")),
		Port:            v.GetInt("port"),
		JWTSecret:       strings.TrimSpace(v.GetString("jwt_secret")),
		TokenTTL:        v.GetDuration("token_ttl"),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFile:         strings.TrimSpace(v.GetString("log_file")),
		DisplayTimezone: strings.TrimSpace(v.GetString("display_timezone")),
		AllowedOrigins:  allowedOrigins(v.GetString("allowed_origins")),
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 168 * time.Hour
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequireSecret reports an error when no JWT secret is configured.
func (c *Config) RequireSecret() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// Location is the zone freetimes are displayed and naively parsed in.
func (c *Config) Location() (*time.Location, error) {
	if c.DisplayTimezone == "" || c.DisplayTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return loc, nil
}

func allowedOrigins(raw string) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	for _, origin := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
