package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Cloud CloudConfig
	Local LocalConfig
}

// CloudConfig holds configuration for the hosted OpenAI-compatible backend.
type CloudConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// LocalConfig holds configuration for the local Ollama backend.
type LocalConfig struct {
	Host        string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// fileConfig mirrors Config for the optional YAML config file.
// Zero values mean "not set" and leave the current value untouched.
type fileConfig struct {
	Cloud struct {
		BaseURL     string  `yaml:"base_url"`
		APIKey      string  `yaml:"api_key"`
		Model       string  `yaml:"model"`
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
		Timeout     string  `yaml:"timeout"`
	} `yaml:"cloud"`
	Local struct {
		Host        string  `yaml:"host"`
		Model       string  `yaml:"model"`
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
		Timeout     string  `yaml:"timeout"`
	} `yaml:"local"`
}

// LoadConfig builds configuration in three layers: built-in defaults, the
// optional YAML config file, then environment variables. filePath may be
// empty, in which case the default location is probed and silently skipped
// if absent.
func LoadConfig(filePath string) (*Config, error) {
	cfg := defaultConfig()

	explicit := filePath != ""
	if !explicit {
		filePath = defaultConfigPath()
	}
	if filePath != "" {
		if err := applyFile(cfg, filePath); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, WrapError(err, "load config file")
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Cloud: CloudConfig{
			BaseURL:     "https://api.deepseek.com/v1",
			Model:       "deepseek-chat",
			Temperature: 0.3,
			MaxTokens:   2048,
			Timeout:     60 * time.Second,
		},
		Local: LocalConfig{
			Host:        "http://localhost:11434",
			Model:       "llama3.1:8b",
			Temperature: 0.3,
			MaxTokens:   2048,
			Timeout:     120 * time.Second,
		},
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pdfsift", "config.yaml")
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	setStr(&cfg.Cloud.BaseURL, fc.Cloud.BaseURL)
	setStr(&cfg.Cloud.APIKey, fc.Cloud.APIKey)
	setStr(&cfg.Cloud.Model, fc.Cloud.Model)
	setFloat32(&cfg.Cloud.Temperature, fc.Cloud.Temperature)
	setInt(&cfg.Cloud.MaxTokens, fc.Cloud.MaxTokens)
	if err := setDuration(&cfg.Cloud.Timeout, fc.Cloud.Timeout); err != nil {
		return fmt.Errorf("parse %s: cloud.timeout: %w", path, err)
	}

	setStr(&cfg.Local.Host, fc.Local.Host)
	setStr(&cfg.Local.Model, fc.Local.Model)
	setFloat32(&cfg.Local.Temperature, fc.Local.Temperature)
	setInt(&cfg.Local.MaxTokens, fc.Local.MaxTokens)
	if err := setDuration(&cfg.Local.Timeout, fc.Local.Timeout); err != nil {
		return fmt.Errorf("parse %s: local.timeout: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Cloud.BaseURL = getEnv("DEEPSEEK_BASE_URL", cfg.Cloud.BaseURL)
	cfg.Cloud.APIKey = getEnv("DEEPSEEK_API_KEY", cfg.Cloud.APIKey)
	if cfg.Cloud.APIKey == "" {
		// fallback for OpenAI-style deployments pointing BaseURL elsewhere
		cfg.Cloud.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.Cloud.Model = getEnv("DEEPSEEK_MODEL", cfg.Cloud.Model)
	cfg.Cloud.Temperature = getEnvAsFloat32("DEEPSEEK_TEMPERATURE", cfg.Cloud.Temperature)
	cfg.Cloud.MaxTokens = getEnvAsInt("DEEPSEEK_MAX_TOKENS", cfg.Cloud.MaxTokens)
	cfg.Cloud.Timeout = getEnvAsDuration("DEEPSEEK_TIMEOUT", cfg.Cloud.Timeout)

	cfg.Local.Host = getEnv("OLLAMA_URL", cfg.Local.Host)
	cfg.Local.Model = getEnv("OLLAMA_MODEL", cfg.Local.Model)
	cfg.Local.Temperature = getEnvAsFloat32("OLLAMA_TEMPERATURE", cfg.Local.Temperature)
	cfg.Local.MaxTokens = getEnvAsInt("OLLAMA_MAX_TOKENS", cfg.Local.MaxTokens)
	cfg.Local.Timeout = getEnvAsDuration("OLLAMA_TIMEOUT", cfg.Local.Timeout)
}

// ValidateCloud checks the parts of the configuration the cloud backend needs.
func (c *Config) ValidateCloud() error {
	if c.Cloud.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "DEEPSEEK_API_KEY is required for --use-cloud", ErrInvalidInput)
	}
	if c.Cloud.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "cloud base URL is required", ErrInvalidInput)
	}
	return nil
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setFloat32(dst *float32, v float32) {
	if v != 0 {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
