package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every key Load reads so the host environment cannot leak
// in; t.Setenv restores the original values on cleanup. Keys must be unset
// rather than empty because godotenv never overrides an existing variable.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"WORDLE_CONFIG", "LOG_LEVEL", "WORDS_FILE", "WORDS_DB", "DAILY",
		"DAILY_SALT", "PORT", "JWT_SECRET", "CLIENT_ORIGIN", "WORDLE_TEST_DB"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	yml := filepath.Join(dir, "wordle.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(
		"log_level: debug\nwords_db: ${WORDLE_TEST_DB}\ndaily: true\nport: \"9000\"\n"), 0o600))
	t.Setenv("WORDLE_CONFIG", yml)
	t.Setenv("WORDLE_TEST_DB", "/tmp/words.db")
	t.Setenv("PORT", "8080")

	cfg, err := Load(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/words.db", cfg.WordsDB)
	assert.True(t, cfg.Daily)
	assert.Equal(t, "8080", cfg.Port, "environment overrides the file")
	assert.Equal(t, "local_dev_salt", cfg.DailySalt)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("WORDS_FILE=/srv/dictionary.txt\nDAILY=false\n"), 0o600))

	cfg, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, "/srv/dictionary.txt", cfg.WordsFile)
	assert.False(t, cfg.Daily)
}

func TestLoad_BadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DAILY", "sometimes")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "DAILY")

	clearEnv(t)
	yml := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("port: [unclosed\n"), 0o600))
	t.Setenv("WORDLE_CONFIG", yml)
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "parse")
}
