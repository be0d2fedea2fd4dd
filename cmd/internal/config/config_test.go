package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/gommon/log"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DATABASE_URL", "PORT", "JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL", "LOG_FILE", "DISPLAY_TIMEZONE", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatabaseURL != "instime.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.Port != 6060 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if err := cfg.RequireSecret(); err == nil {
		t.Error("RequireSecret() should fail without JWT_SECRET")
	}
	if diff := cmp.Diff(defaultOrigins, cfg.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/instime")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DISPLAY_TIMEZONE", "America/New_York")
	t.Setenv("ALLOWED_ORIGINS", "https://instime.app, ,https://www.instime.app")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatabaseURL != "postgres://localhost/instime" || cfg.Port != 8080 || cfg.TokenTTL != 2*time.Hour {
		t.Errorf("cfg = %+v", cfg)
	}
	if err := cfg.RequireSecret(); err != nil {
		t.Errorf("RequireSecret() failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}

	loc, err := cfg.Location()
	if err != nil || loc.String() != "America/New_York" {
		t.Errorf("Location() = %v, %v", loc, err)
	}

	want := append(append([]string{}, defaultOrigins...), "https://instime.app", "https://www.instime.app")
	if diff := cmp.Diff(want, cfg.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_BadTimezone(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DISPLAY_TIMEZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject an unknown timezone")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Lvl{
		"debug":   log.DEBUG,
		"info":    log.INFO,
		"warn":    log.WARN,
		"warning": log.WARN,
		"error":   log.ERROR,
		"off":     log.OFF,
		"":        log.INFO,
	}

	for level, want := range tests {
		if got := ParseLevel(level); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", level, got, want)
		}
	}
}
