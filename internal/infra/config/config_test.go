package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateRequiresGatewayCredentials(t *testing.T) {
	cfg := defaultConfig()

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ai.baseUrl")

	cfg.AI.BaseURL = "https://gateway.example.com/v1"
	err = cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ai.apiKey")

	cfg.AI.APIKey = "secret"
	require.NoError(t, cfg.Validate())
}

func TestValidateCacheAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.AI.BaseURL = "https://gateway.example.com/v1"
	cfg.AI.APIKey = "secret"
	cfg.Cache.Enabled = true

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "cache.addr")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AI_BASE_URL", "https://gateway.example.com/v1")
	t.Setenv("AI_API_KEY", "secret")
	t.Setenv("SESSION_PROGRESS_INTERVAL", "200ms")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://app.example.com, https://stage.example.com")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	require.Equal(t, "https://gateway.example.com/v1", cfg.AI.BaseURL)
	require.Equal(t, 200*time.Millisecond, cfg.Session.ProgressInterval)
	require.Equal(t, []string{"https://app.example.com", "https://stage.example.com"}, cfg.HTTP.AllowedOrigins)
	require.NoError(t, cfg.Validate())
}
