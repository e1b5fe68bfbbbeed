package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("MEDIA_BASE_URL", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4*time.Hour, cfg.JWTExpiresIn)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "http://localhost:8080/api/v1/media", cfg.MediaBaseURL)
	assert.Equal(t, "minio", cfg.StorageDriver)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("RATE_LIMIT_RPM", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiresIn)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, 42, cfg.RateLimitRPM)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_IN", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "ftp")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("prod without secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "prod")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("JWT_EXPIRES_IN", "")
		_, err := Load()
		assert.Error(t, err)
	})
}
