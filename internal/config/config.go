package config

import (
	"os"
	"strconv"
	"strings"

	"retcheck/domain/returns"
	"retcheck/internal"
	"retcheck/internal/errors"
	"retcheck/internal/report"
)

// Config represents the complete application configuration
type Config struct {
	Input    InputConfig
	Output   OutputConfig
	LogLevel internal.LogLevel
}

// InputConfig says where the returns come from. There is no default path:
// the file must be named on the command line or in RETCHECK_RETURNS_FILE.
type InputConfig struct {
	ReturnsFile string
	Column      string
	Sheet       string
}

// OutputConfig controls the report
type OutputConfig struct {
	Format  report.Format
	Summary bool
}

// Load reads configuration from environment variables. It does not require
// ReturnsFile; call Validate once command-line overrides are applied.
func Load() (*Config, error) {
	format, err := report.ParseFormat(getEnvOrDefault("RETCHECK_FORMAT", string(report.FormatText)))
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, "RETCHECK_FORMAT", err)
	}

	return &Config{
		Input: InputConfig{
			ReturnsFile: strings.TrimSpace(os.Getenv("RETCHECK_RETURNS_FILE")),
			Column:      getEnvOrDefault("RETCHECK_COLUMN", returns.DefaultColumn),
			Sheet:       getEnvOrDefault("RETCHECK_SHEET", ""),
		},
		Output: OutputConfig{
			Format:  format,
			Summary: getEnvBoolOrDefault("RETCHECK_SUMMARY", false),
		},
		LogLevel: internal.ParseLogLevel(os.Getenv("LOG_LEVEL"), internal.LogLevelWarn),
	}, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.Input.ReturnsFile == "" {
		return errors.ConfigInvalid("returns file is required (argument or RETCHECK_RETURNS_FILE)")
	}
	if strings.TrimSpace(c.Input.Column) == "" {
		return errors.ConfigInvalid("returns column name must not be empty")
	}
	if _, err := report.ParseFormat(string(c.Output.Format)); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, "output format", err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
