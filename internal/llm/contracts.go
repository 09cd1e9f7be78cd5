package llm

import "context"

// AnalysisResult is the normalized shape we want from the model. It is
// created once per invocation and immutable afterward; the formatter only
// reads it.
type AnalysisResult struct {
	DocumentType    string   `json:"document_type"`
	Summary         string   `json:"summary"`
	KeyInsights     []string `json:"key_insights"`
	Recommendations []string `json:"recommendations"`
	ConfidenceScore float64  `json:"confidence_score"`
	Disclaimer      string   `json:"disclaimer,omitempty"`

	// RawModelText keeps the unparsed backend output for diagnostics; it is
	// never serialized into reports.
	RawModelText string `json:"-"`
}

// Message is a single chat message.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest is a provider-agnostic chat completion request.
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
	// JSONMode asks the backend to constrain output to a JSON object where
	// the provider supports it.
	JSONMode bool
}

// Backend is the capability both LLM services implement: prompt in, text
// out, or a connection/protocol failure. One request attempt; the timeout is
// owned by the backend's HTTP client.
type Backend interface {
	Name() string
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}

// NewRequest builds a two-message completion request with our defaults.
func NewRequest(systemPrompt, userPrompt string, temperature float32, maxTokens int) *CompletionRequest {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		JSONMode:    true,
	}
}
