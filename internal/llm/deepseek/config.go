package deepseek

import (
	"log/slog"
	"net/http"
	"time"
)

// Config for the DeepSeek client. The API is OpenAI-compatible, so BaseURL
// may also point at any other /chat/completions deployment.
type Config struct {
	APIKey      string
	BaseURL     string // default https://api.deepseek.com/v1
	Model       string // e.g. "deepseek-chat"
	Temperature float32
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepseek.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "deepseek-chat"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
