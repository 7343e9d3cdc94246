package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "localhost")
	t.Setenv("PG_USER", "livequiz")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "livequiz")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "livequiz", cfg.Name)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr)
	assert.Equal(t, 20*time.Second, cfg.GracefulShutdownTimeout)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, 5*time.Minute, cfg.Redis.QuizTTL)
	assert.Equal(t, 0.5, cfg.Game.MinBonusFraction)
	assert.Equal(t, 30, cfg.Game.DefaultQuestionSeconds)
	assert.Equal(t, 2*time.Hour, cfg.Game.SessionIdleTTL)
	assert.Equal(t, 10*time.Minute, cfg.Game.SessionSweepInterval)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9090")
	t.Setenv("SCORE_MIN_BONUS_FRACTION", "0.25")
	t.Setenv("SESSION_IDLE_TTL", "45m")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTPAddr)
	assert.Equal(t, 0.25, cfg.Game.MinBonusFraction)
	assert.Equal(t, 45*time.Minute, cfg.Game.SessionIdleTTL)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load(context.Background())
	assert.Error(t, err)
}
