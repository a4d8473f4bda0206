package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "assetdesk.audit", cfg.Audit.Topic)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Nil(t, cfg.KafkaBrokers())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvVarOverride(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("LOGIN_BURST", "9")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers())
	assert.Equal(t, 9, cfg.RateLimit.Burst)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SIGNING_KEY")

	t.Setenv("SESSION_SIGNING_KEY", "prod-signing")
	t.Setenv("TOKEN_SEAL_KEY", "prod-seal")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COOKIE_SECURE")

	t.Setenv("COOKIE_SECURE", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RejectsNonPositiveRate(t *testing.T) {
	t.Setenv("LOGIN_RATE_PER_SECOND", "0")

	_, err := Load()
	assert.Error(t, err)
}
