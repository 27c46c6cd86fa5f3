package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"RFM_INPUT", "RFM_SHEET", "RFM_DSN", "RFM_TABLE", "RFM_OUTPUT_DIR",
		"RFM_TOP_N", "RFM_VERBOSE", "LOG_LEVEL", "ENVIRONMENT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Online Retail.xlsx", cfg.Input)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.DSN)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RFM_INPUT", "retail.csv")
	t.Setenv("RFM_DSN", "mysql://u:p@localhost:3306/shop")
	t.Setenv("RFM_TABLE", "online_retail")
	t.Setenv("RFM_TOP_N", "10")
	t.Setenv("RFM_VERBOSE", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "retail.csv", cfg.Input)
	assert.Equal(t, "online_retail", cfg.Table)
	assert.Equal(t, 10, cfg.TopN)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"dsn without table": {"RFM_DSN": "postgres://localhost/shop"},
		"negative top n":    {"RFM_TOP_N": "-1"},
		"bad top n":         {"RFM_TOP_N": "five"},
		"bad verbose":       {"RFM_VERBOSE": "loud"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
