package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pdfsift/pdfsift/internal/llm"
)

// Client talks to a local Ollama server via its /api/chat endpoint.
type Client struct {
	host   string
	model  string
	http   *http.Client
	logger *slog.Logger
}

func NewClient(host, model string, timeout time.Duration, logger *slog.Logger) *Client {
	if host == "" {
		host = "http://localhost:11434"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (c *Client) Name() string {
	return "ollama"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Complete implements llm.Backend against POST /api/chat with stream=false.
func (c *Client) Complete(ctx context.Context, req *llm.CompletionRequest) (string, error) {
	messages := make([]chatMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}

	body := chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options: map[string]any{
			"temperature": req.Temperature,
		},
	}
	if req.MaxTokens > 0 {
		body.Options["num_predict"] = req.MaxTokens
	}
	if req.JSONMode {
		body.Format = "json"
	}

	raw, _, err := llm.SendJSON(ctx, c.http, c.host+"/api/chat", body, nil, c.logger)
	if err != nil {
		return "", fmt.Errorf("cannot reach ollama at %s: %w", c.host, err)
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	content := strings.TrimSpace(resp.Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion in ollama response")
	}
	return content, nil
}
