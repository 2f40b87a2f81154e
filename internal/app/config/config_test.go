package config

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"HTTP_ADDR", "INTERNAL_TOKEN", "CORS_ALLOW_ORIGIN", "SHUTDOWN_TIMEOUT",
	"STORE_BACKEND", "SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY", "DATABASE_URL",
	"MIGRATE_ON_START", "DOCUMENTS_BUCKET", "ASSETS_DIR", "FONTS_DIR",
	"SESSION_TTL", "SESSION_MAX_ENTRIES", "POLICY_PREFIX", "POLICY_SUFFIX",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_BASE_URL", "MANAGER_CHAT_ID",
	"LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTERNAL_TOKEN", "secret")
	t.Setenv("SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StoreSupabase, cfg.StoreBackend)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigin)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 1000, cfg.SessionMaxEntries)
	assert.Equal(t, "assets", cfg.AssetsDir)
	assert.Equal(t, "3240-800", cfg.PolicyPrefix)
	assert.Equal(t, "25", cfg.PolicySuffix)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramBaseURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.MigrateOnStart)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTERNAL_TOKEN", "secret")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/caution")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("CORS_ALLOW_ORIGIN", "https://a.ci, https://b.ci,")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_MAX_ENTRIES", "50")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("MANAGER_CHAT_ID", "-100")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.StoreBackend)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, []string{"https://a.ci", "https://b.ci"}, cfg.CORSAllowOrigin)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 50, cfg.SessionMaxEntries)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MemoryNeedsOnlyToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTERNAL_TOKEN", "secret")
	t.Setenv("STORE_BACKEND", "memory")

	_, err := Load()
	assert.NoError(t, err)
}

func TestLoad_ReportsAllErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "supabase")
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("SESSION_MAX_ENTRIES", "many")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("MIGRATE_ON_START", "perhaps")

	_, err := Load()
	require.Error(t, err)
	for _, want := range []string{
		"INTERNAL_TOKEN", "SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY",
		"SESSION_TTL", "SESSION_MAX_ENTRIES", "LOG_LEVEL", "LOG_FORMAT", "MIGRATE_ON_START",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTERNAL_TOKEN", "secret")
	t.Setenv("STORE_BACKEND", "mysql")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestLoad_BucketNeedsSupabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTERNAL_TOKEN", "secret")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("DOCUMENTS_BUCKET", "documents")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCUMENTS_BUCKET")
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := SetupLogger(Config{LogLevel: slog.LevelWarn, LogFormat: "text"})
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
	_, isText := logger.Handler().(*slog.TextHandler)
	assert.True(t, isText)
}
