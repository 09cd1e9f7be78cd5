package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/pdfsift/pdfsift/internal/llm"
	"github.com/pdfsift/pdfsift/internal/task"
)

// maxPromptChars caps how much document text goes into a single prompt so we
// stay under typical context windows.
const maxPromptChars = 12000

// Config holds agent behavior knobs.
type Config struct {
	Temperature float32
	MaxTokens   int
}

// Agent turns normalized document text plus a task definition into an
// AnalysisResult using a single backend. Backend failures never escape:
// they degrade into the task's fallback result.
type Agent struct {
	backend llm.Backend
	cfg     Config
	logger  *slog.Logger
}

func New(backend llm.Backend, cfg Config, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{backend: backend, cfg: cfg, logger: logger}
}

// Analyze performs one backend call and best-effort parsing. It always
// returns a usable result: on connection failure, timeout, or unparseable
// output, the task's fallback result with confidence 0.0 is returned instead
// of an error.
func (a *Agent) Analyze(ctx context.Context, text string, def task.Definition) llm.AnalysisResult {
	start := time.Now()

	prompt := def.RenderUserPrompt(clip(text, maxPromptChars))
	req := llm.NewRequest(def.SystemPrompt, prompt, a.cfg.Temperature, a.cfg.MaxTokens)

	a.logger.Debug("agent.analyze.start",
		"task", string(def.ID),
		"backend", a.backend.Name(),
		"text_len", len(text),
	)

	raw, err := a.backend.Complete(ctx, req)
	if err != nil {
		a.logger.Debug("agent.analyze.backend_error",
			"task", string(def.ID),
			"backend", a.backend.Name(),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Fallback(def, "")
	}

	res, err := llm.ParseAnalysis(raw, a.logger)
	if err != nil {
		a.logger.Debug("agent.analyze.unparseable_response",
			"task", string(def.ID),
			"backend", a.backend.Name(),
			"error", err,
			"raw_bytes", len(raw),
		)
		return Fallback(def, raw)
	}

	res.RawModelText = raw
	if res.Disclaimer == "" {
		res.Disclaimer = def.Disclaimer
	}

	a.logger.Debug("agent.analyze.ok",
		"task", string(def.ID),
		"backend", a.backend.Name(),
		"document_type", res.DocumentType,
		"insights", len(res.KeyInsights),
		"confidence", res.ConfidenceScore,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

// Fallback builds the degraded result for a task: canned summary, empty
// insight and recommendation lists, confidence 0.0.
func Fallback(def task.Definition, raw string) llm.AnalysisResult {
	return llm.AnalysisResult{
		DocumentType:    def.FallbackDocumentType,
		Summary:         def.FallbackSummary,
		KeyInsights:     []string{},
		Recommendations: []string{},
		ConfidenceScore: 0.0,
		Disclaimer:      def.Disclaimer,
		RawModelText:    raw,
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
