package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Empty(t, cfg.DB.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:8080", cfg.Serve.Addr)
	assert.NotEmpty(t, cfg.Serve.Origins)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.Provider)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "quizcard", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
catalog: /srv/questions.json
db:
  driver: postgres
  dsn: postgres://localhost/quiz
serve:
  origins: ["https://quiz.example"]
llm:
  provider: mock
  timeout: 5s
`), 0o644))

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/srv/questions.json", cfg.Catalog)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/quiz", cfg.DB.DSN)
	assert.Equal(t, []string{"https://quiz.example"}, cfg.Serve.Origins)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
}

func TestLoadExplicitConfigFileMissing(t *testing.T) {
	isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	t.Setenv("QUIZCARD_LOG_LEVEL", "error")
	t.Setenv("QUIZCARD_LLM_API_KEY", "sk-test")

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZCARD_CATALOG", "from-env.json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("catalog", "", "")
	fs.String("addr", "", "")
	require.NoError(t, fs.Parse([]string{"--catalog", "from-flag.json"}))

	cfg, err := Load(Options{Flags: fs})
	require.NoError(t, err)

	assert.Equal(t, "from-flag.json", cfg.Catalog)
	// An unset flag does not shadow the default.
	assert.Equal(t, "127.0.0.1:8080", cfg.Serve.Addr)
}

func TestDotEnvFile(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("QUIZCARD_OUTLINE=/tmp/outline.json\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("QUIZCARD_OUTLINE") })

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/outline.json", cfg.Outline)
}
