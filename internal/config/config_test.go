package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/o2ledger")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.BotEnabled())
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/o2ledger")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadAdminsAndLevel(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/o2ledger")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_IDS", "11,22")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsAdmin(22))
	assert.False(t, cfg.IsAdmin(33))
	assert.Equal(t, "11,22", cfg.AdminIDsString())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.BotEnabled())
}

func TestLoadRejectsInvertedPool(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/o2ledger")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := Load()
	require.Error(t, err)
}
