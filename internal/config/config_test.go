package config

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retcheck/internal"
	"retcheck/internal/errors"
	"retcheck/internal/report"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"RETCHECK_RETURNS_FILE", "RETCHECK_COLUMN", "RETCHECK_SHEET",
		"RETCHECK_FORMAT", "RETCHECK_SUMMARY", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Input.ReturnsFile)
	assert.Equal(t, "return", cfg.Input.Column)
	assert.Equal(t, "", cfg.Input.Sheet)
	assert.Equal(t, report.FormatText, cfg.Output.Format)
	assert.False(t, cfg.Output.Summary)
	assert.Equal(t, internal.LogLevelWarn, cfg.LogLevel)

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrConfigInvalid))
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RETCHECK_RETURNS_FILE", " data/net_returns.csv ")
	t.Setenv("RETCHECK_COLUMN", "net")
	t.Setenv("RETCHECK_SHEET", "Returns")
	t.Setenv("RETCHECK_FORMAT", "json")
	t.Setenv("RETCHECK_SUMMARY", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/net_returns.csv", cfg.Input.ReturnsFile)
	assert.Equal(t, "net", cfg.Input.Column)
	assert.Equal(t, "Returns", cfg.Input.Sheet)
	assert.Equal(t, report.FormatJSON, cfg.Output.Format)
	assert.True(t, cfg.Output.Summary)
	assert.Equal(t, internal.LogLevelDebug, cfg.LogLevel)
}

func TestLoad_BadFormat(t *testing.T) {
	clearEnv(t)
	t.Setenv("RETCHECK_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Input:  InputConfig{ReturnsFile: "r.csv", Column: "return"},
		Output: OutputConfig{Format: report.FormatText},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Input.Column = "  "
	assert.Error(t, cfg.Validate())

	cfg.Input.Column = "return"
	cfg.Output.Format = "pdf"
	assert.Error(t, cfg.Validate())
}
