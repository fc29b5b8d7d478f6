package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("ADNOW_ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Cleanup(reset)
	return dir
}

func TestLoadAndGet(t *testing.T) {
	isolate(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, "sqlite", Get("storage_backend", ""))
	require.Equal(t, 300, GetInt("search_debounce_ms", 0))
	require.Equal(t, "name", Get("default_sort", ""))
	require.False(t, GetBool("debug", true))
}

func TestDefaultsFollowXDG(t *testing.T) {
	dir := isolate(t)
	Load()

	require.Equal(t, filepath.Join(dir, "config", "adnow"), Get("config_dir", ""))
	require.Equal(t, filepath.Join(dir, "state", "adnow"), Get("state_dir", ""))
}

func TestConfigLoadingPrecedence(t *testing.T) {
	dir := isolate(t)

	configFile := filepath.Join(dir, "custom.toml")
	content := `
search_debounce_ms = 500
storage_backend = "redis"
default_sort = "rating"
debug = true
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	t.Setenv("ADNOW_CONFIG_PATH", configFile)
	t.Setenv("ADNOW_SEARCH_DEBOUNCE_MS", "200")
	t.Setenv("ADNOW_STORAGE_BACKEND", "memory")

	Load()

	require.Equal(t, "200", Get("search_debounce_ms", ""), "environment should override config file")
	require.Equal(t, "memory", Get("storage_backend", ""), "environment should override config file")
	require.Equal(t, "rating", Get("default_sort", ""), "config file value should be used when not overridden")
	require.True(t, GetBool("debug", false))
	require.Equal(t, "", Get("config_path", ""), "file selector is not a config key")
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("ADNOW_SEARCH_DEBOUNCE_MS", "-5")
	t.Setenv("ADNOW_STORAGE_BACKEND", "postgres")
	t.Setenv("ADNOW_DEFAULT_SORT", "RATING")
	t.Setenv("ADNOW_LOCALE", "not a locale!")
	t.Setenv("ADNOW_DEBUG", "maybe")
	t.Setenv("ADNOW_REDIS_DB", "-1")
	t.Setenv("ADNOW_HOOKS_FAILURE_MODE", "explode")

	Load()

	require.Equal(t, 300, GetInt("search_debounce_ms", 0))
	require.Equal(t, "sqlite", Get("storage_backend", ""))
	require.Equal(t, "rating", Get("default_sort", ""), "enum values are lower-cased")
	require.Equal(t, "en", Get("locale", ""))
	require.Equal(t, "false", Get("debug", ""))
	require.Equal(t, "0", Get("redis_db", ""))
	require.Equal(t, "warn", Get("hooks_failure_mode", ""))
}

func TestLocaleIsCanonicalized(t *testing.T) {
	isolate(t)
	t.Setenv("ADNOW_LOCALE", "fr-ca")
	Load()
	require.Equal(t, "fr-CA", Get("locale", ""))
}

func TestDotEnvFile(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "adnow.env")
	require.NoError(t, os.WriteFile(envFile, []byte("ADNOW_SERVE_ADDR=0.0.0.0:9999\nADNOW_QUIET=yes\n"), 0644))
	t.Setenv("ADNOW_ENV_FILE", envFile)
	t.Cleanup(func() {
		_ = os.Unsetenv("ADNOW_SERVE_ADDR")
		_ = os.Unsetenv("ADNOW_QUIET")
	})

	Load()

	require.Equal(t, "0.0.0.0:9999", Get("serve_addr", ""))
	require.True(t, GetBool("quiet", false))
}

func TestSampleConfigCreated(t *testing.T) {
	dir := isolate(t)
	Load()

	data, err := os.ReadFile(filepath.Join(dir, "config", "adnow", "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "# adnow configuration")
	require.Contains(t, string(data), "search_debounce_ms = 300")
}

func TestSetAndAll(t *testing.T) {
	isolate(t)
	Load()

	Set("default_sort", "newest")
	require.Equal(t, "newest", Get("default_sort", ""))

	all := All()
	require.Equal(t, "newest", all["default_sort"])
	all["default_sort"] = "name"
	require.Equal(t, "newest", Get("default_sort", ""), "All returns a copy")
}

func TestValidators(t *testing.T) {
	tests := []struct {
		key, in, want string
		ok            bool
	}{
		{"search_debounce_ms", " 150 ", "150", true},
		{"search_debounce_ms", "0", "", false},
		{"redis_db", "0", "0", true},
		{"storage_backend", "Redis", "redis", true},
		{"output_format", "xml", "", false},
		{"locale", "sv-se", "sv-SE", true},
		{"quiet", "ON", "true", true},
		{"quiet", "nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.in, func(t *testing.T) {
			got, err := validators[tt.key](tt.in)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEnumErrorListsChoices(t *testing.T) {
	_, err := validators["default_sort"]("price")
	require.EqualError(t, err, "must be one of: name, newest, rating")
}
