package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "LOG_LEVEL", "SERVER_PORT", "CORS_ALLOWED_ORIGIN", "STORE_DRIVER",
	"SUPABASE_URL", "SUPABASE_KEY", "SQLITE_PATH", "GEMINI_API_KEY", "GOOGLE_API_KEY",
	"GEMINI_DEFAULT_MODEL", "GENERATE_TIMEOUT", "REDIS_ADDR", "REDIS_PASSWORD",
	"REDIS_DB", "FEED_KEY_PREFIX",
}

// clearEnv unsets every key Load reads. t.Setenv registers the restore,
// and the keys must be absent for godotenv to fill them from a file.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_SQLiteDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "gamemaster.db", cfg.SQLitePath)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiDefaultModel)
	assert.Equal(t, 120*time.Second, cfg.GenerateTimeout)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_GoogleAPIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("GOOGLE_API_KEY", "google")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "google", cfg.GeminiAPIKey)
}

func TestLoad_SupabaseRequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("REDIS_DB", "two")
	t.Setenv("GENERATE_TIMEOUT", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
	assert.Contains(t, err.Error(), "GENERATE_TIMEOUT")
}

func TestLoad_UnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("GEMINI_API_KEY", "k")

	_, err := Load("")
	assert.ErrorContains(t, err, "mongo")
}

func TestLoad_InvalidLogLevelFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("LOG_LEVEL", "chatty")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "STORE_DRIVER=sqlite\nGEMINI_API_KEY=from-file\nGENERATE_TIMEOUT=30s\nSERVER_PORT=9090\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	// Set variables take precedence over the file.
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GeminiAPIKey)
	assert.Equal(t, 30*time.Second, cfg.GenerateTimeout)
	assert.Equal(t, "7070", cfg.ServerPort)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("GEMINI_API_KEY", "k")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
