package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SMS_DB_PATH", "LOG_LEVEL", "UNDO_DEPTH", "CURRENCY", "HEALTH_ADDR", "DISCORD_BOT_TOKEN", "DISCORD_CHANNEL_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "campaign.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 50, cfg.UndoDepth)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.Error(t, cfg.RequireDiscord())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SMS_DB_PATH", ":memory:")
	t.Setenv("UNDO_DEPTH", "0")
	t.Setenv("CURRENCY", "usd")
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("DISCORD_CHANNEL_ID", "123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DatabasePath)
	assert.Equal(t, 0, cfg.UndoDepth)
	assert.Equal(t, "USD", cfg.Currency)
	assert.NoError(t, cfg.RequireDiscord())
}

func TestLoad_BadUndoDepth(t *testing.T) {
	t.Setenv("UNDO_DEPTH", "lots")

	_, err := Load()
	assert.Error(t, err)
}
