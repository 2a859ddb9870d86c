package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "credentials.json", filepath.Base(cfg.CredentialsPath))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MEDPORT_API_URL", "https://portal.example.pl")
	t.Setenv("MEDPORT_TIMEOUT_MS", "2500")
	t.Setenv("MEDPORT_CREDENTIALS", "/tmp/medport/creds.json")
	t.Setenv("MEDPORT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://portal.example.pl", cfg.APIURL)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout())
	assert.Equal(t, "/tmp/medport/creds.json", cfg.CredentialsPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("MEDPORT_TIMEOUT_MS", "-5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
}
