package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearBackendEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DEEPSEEK_BASE_URL", "DEEPSEEK_API_KEY", "DEEPSEEK_MODEL",
		"DEEPSEEK_TEMPERATURE", "DEEPSEEK_MAX_TOKENS", "DEEPSEEK_TIMEOUT",
		"OPENAI_API_KEY",
		"OLLAMA_URL", "OLLAMA_MODEL", "OLLAMA_TEMPERATURE",
		"OLLAMA_MAX_TOKENS", "OLLAMA_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadConfigDefaults(t *testing.T) {
	clearBackendEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.deepseek.com/v1", cfg.Cloud.BaseURL)
	assert.Equal(t, "deepseek-chat", cfg.Cloud.Model)
	assert.Equal(t, "http://localhost:11434", cfg.Local.Host)
	assert.Equal(t, "llama3.1:8b", cfg.Local.Model)
	assert.Equal(t, 120*time.Second, cfg.Local.Timeout)
}

func TestLoadConfigFileLayer(t *testing.T) {
	clearBackendEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"cloud:\n  model: deepseek-reasoner\n  timeout: 90s\nlocal:\n  host: http://gpu-box:11434\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "deepseek-reasoner", cfg.Cloud.Model)
	assert.Equal(t, 90*time.Second, cfg.Cloud.Timeout)
	assert.Equal(t, "http://gpu-box:11434", cfg.Local.Host)
	// untouched keys keep their defaults
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.Cloud.BaseURL)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	clearBackendEnv(t)
	t.Setenv("OLLAMA_MODEL", "mistral:7b")
	t.Setenv("DEEPSEEK_API_KEY", "sk-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"cloud:\n  api_key: sk-file\nlocal:\n  model: llama3.1:70b\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.Cloud.APIKey)
	assert.Equal(t, "mistral:7b", cfg.Local.Model)
}

func TestLoadConfigOpenAIKeyFallback(t *testing.T) {
	clearBackendEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sk-openai", cfg.Cloud.APIKey)
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	clearBackendEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateCloud(t *testing.T) {
	clearBackendEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	err = cfg.ValidateCloud()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEEPSEEK_API_KEY")

	cfg.Cloud.APIKey = "sk-x"
	assert.NoError(t, cfg.ValidateCloud())
}
