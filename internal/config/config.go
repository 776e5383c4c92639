// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/govalues/money"
	"github.com/joho/godotenv"
)

type Config struct {
	// Logging
	LogLevel  string
	LogFormat string

	// Display currency for balances and amounts
	Currency string

	// HTTP surface (serve mode)
	HTTPAddr string

	// Seed curated categories and a demo account on start
	DevSeed bool

	// Format used for export/import paths without a known extension
	ExportFormat string
}

// Load reads the given .env files (default ".env") into the environment
// without overriding variables already set, then builds the Config. Missing
// .env files are ignored.
func Load(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)
	return &Config{
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "json")),
		Currency:     strings.ToUpper(getEnv("LEDGER_CURRENCY", "RUB")),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		DevSeed:      getEnvBool("DEV_SEED"),
		ExportFormat: strings.ToLower(getEnv("EXPORT_FORMAT", "json")),
	}
}

// Validate returns every problem found, not just the first.
func (c *Config) Validate() error {
	var problems []string

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL %q: must be one of debug, info, warn, error", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT %q: must be json or text", c.LogFormat))
	}
	if _, err := money.ParseCurr(c.Currency); err != nil {
		problems = append(problems, fmt.Sprintf("invalid LEDGER_CURRENCY %q: %v", c.Currency, err))
	}
	if _, port, err := net.SplitHostPort(c.HTTPAddr); err != nil || port == "" {
		problems = append(problems, fmt.Sprintf("invalid HTTP_ADDR %q: expected host:port", c.HTTPAddr))
	}
	switch c.ExportFormat {
	case "json", "yaml", "yml":
	default:
		problems = append(problems, fmt.Sprintf("invalid EXPORT_FORMAT %q: must be json or yaml", c.ExportFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
