package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdfsift/pdfsift/internal/llm"
)

// Mode selects the output rendering.
type Mode string

const (
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

// ParseMode validates a user-supplied format string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeText:
		return ModeText, nil
	case ModeJSON:
		return ModeJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected text or json)", s)
	}
}

const (
	headerRule  = "============================================================"
	sectionRule = "----------------------------------------"
)

// Format renders an AnalysisResult. An unrecognized mode is a programmer
// error, not a user-facing condition, and returns an error.
func Format(res llm.AnalysisResult, mode Mode) (string, error) {
	switch mode {
	case ModeText:
		return formatText(res), nil
	case ModeJSON:
		return formatJSON(res)
	default:
		return "", fmt.Errorf("unsupported report mode %q", mode)
	}
}

func formatText(res llm.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(headerRule + "\n")
	b.WriteString("PDF ANALYSIS REPORT\n")
	b.WriteString(headerRule + "\n\n")

	if res.DocumentType != "" {
		fmt.Fprintf(&b, "Document Type: %s\n\n", res.DocumentType)
	}

	if res.Summary != "" {
		b.WriteString("SUMMARY:\n")
		b.WriteString(sectionRule + "\n")
		b.WriteString(res.Summary + "\n\n")
	}

	writeList(&b, "KEY INSIGHTS:", res.KeyInsights)
	writeList(&b, "RECOMMENDATIONS:", res.Recommendations)

	fmt.Fprintf(&b, "Confidence Score: %.2f\n", res.ConfidenceScore)

	if res.Disclaimer != "" {
		b.WriteString("\nDISCLAIMER:\n")
		b.WriteString(sectionRule + "\n")
		b.WriteString(res.Disclaimer + "\n")
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + "\n")
	b.WriteString(sectionRule + "\n")
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\n")
}

func formatJSON(res llm.AnalysisResult) (string, error) {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(out), nil
}
