package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "PROCESSING_MODE", "MINIO_ENDPOINT", "MINIO_BUCKET", "MINIO_USE_SSL", "RECONCILE_PENDING_TIMEOUT"} {
		t.Setenv(key, "")
	}
	t.Setenv("ASSET_PUBLIC_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ProcessingModeLocal, cfg.Processing.Mode)
	assert.Equal(t, "http://localhost:9000/avatar-faces", cfg.Storage.PublicBaseURL)
	assert.Equal(t, 15*time.Minute, cfg.Reconcile.PendingTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PROCESSING_MODE", "remote")
	t.Setenv("RECONCILE_PENDING_TIMEOUT", "1h")
	t.Setenv("CORS_ORIGINS", "https://game.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ProcessingModeRemote, cfg.Processing.Mode)
	assert.Equal(t, time.Hour, cfg.Reconcile.PendingTimeout)
	assert.Equal(t, []string{"https://game.example.com", "https://admin.example.com"}, cfg.Security.CORSOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "eighty")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("processing mode", func(t *testing.T) {
		t.Setenv("PROCESSING_MODE", "lambda")
		_, err := Load()
		assert.Error(t, err)
	})
}
