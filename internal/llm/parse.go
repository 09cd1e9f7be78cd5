package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// defaultParsedConfidence is used when a labeled-text response carries no
// confidence figure of its own.
const defaultParsedConfidence = 0.5

var (
	reFencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	reHeading    = regexp.MustCompile(`(?i)^\s*(?:#+\s*)?(document\s*type|summary|key\s*insights?|insights?|key\s*findings?|findings?|interpretations?|recommendations?|confidence(?:\s*score)?|disclaimer)\s*[:\-]*\s*(.*)$`)
	reListItem   = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+(.*)$`)
	reRule       = regexp.MustCompile(`^[\s=\-_*]+$`)
	reNumber     = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParseAnalysis turns raw model output into an AnalysisResult, best effort:
// a JSON object (direct, fenced, or embedded) validated against the analysis
// schema, then a labeled-section scan of plain text. The returned error means
// "nothing parseable"; the caller decides what to degrade to.
func ParseAnalysis(raw string, logger *slog.Logger) (AnalysisResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if candidate, ok := ExtractJSONCandidate(raw); ok {
		res, err := parseJSONAnalysis([]byte(candidate), logger)
		if err == nil {
			return res, nil
		}
		logger.Debug("llm.parse.json_candidate_rejected", "error", err)
	}

	if res, ok := ParseLabeledSections(raw); ok {
		return res, nil
	}

	return AnalysisResult{}, fmt.Errorf("response is neither valid JSON nor labeled text")
}

func parseJSONAnalysis(candidate []byte, logger *slog.Logger) (AnalysisResult, error) {
	schema := BuildAnalysisJSONSchema()

	cleaned, _, err := NormalizeAndSanitizeJSON(candidate, logger)
	if err != nil {
		return AnalysisResult{}, err
	}
	if err := ValidateJSONAgainstSchema(schema, cleaned); err != nil {
		return AnalysisResult{}, err
	}

	var out AnalysisResult
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return AnalysisResult{}, fmt.Errorf("unmarshal fields: %w", err)
	}
	ensureSlices(&out)
	return out, nil
}

// ExtractJSONCandidate returns the most plausible JSON object inside raw
// model text: the whole payload, a fenced code block, or the outermost
// braces.
func ExtractJSONCandidate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s, true
	}
	if match := reFencedJSON.FindStringSubmatch(s); match != nil {
		return match[1], true
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1], true
	}
	return "", false
}

// ParseLabeledSections scans a plain-text response for labeled sections
// (Document Type, Summary, Key Insights, Recommendations, Confidence,
// Disclaimer) with numbered or bulleted lists underneath. ok is false when
// the text yields neither a summary nor any insights.
func ParseLabeledSections(raw string) (AnalysisResult, bool) {
	var res AnalysisResult
	ensureSlices(&res)

	section := ""
	var summaryLines []string
	var disclaimerLines []string
	confidenceSeen := false

	for _, line := range strings.Split(raw, "\n") {
		if reRule.MatchString(line) {
			continue
		}

		if match := reHeading.FindStringSubmatch(line); match != nil {
			heading := strings.ToLower(strings.Join(strings.Fields(match[1]), " "))
			rest := strings.TrimSpace(match[2])
			switch {
			case strings.HasPrefix(heading, "document"):
				section = "document_type"
				if rest != "" {
					res.DocumentType = rest
					section = ""
				}
			case heading == "summary":
				section = "summary"
				if rest != "" {
					summaryLines = append(summaryLines, rest)
				}
			case strings.Contains(heading, "insight") || strings.Contains(heading, "finding") || strings.Contains(heading, "interpretation"):
				section = "key_insights"
				if rest != "" {
					res.KeyInsights = append(res.KeyInsights, rest)
				}
			case strings.HasPrefix(heading, "recommendation"):
				section = "recommendations"
				if rest != "" {
					res.Recommendations = append(res.Recommendations, rest)
				}
			case strings.HasPrefix(heading, "confidence"):
				section = ""
				if f, ok := parseConfidence(rest); ok {
					res.ConfidenceScore = f
					confidenceSeen = true
				}
			case heading == "disclaimer":
				section = "disclaimer"
				if rest != "" {
					disclaimerLines = append(disclaimerLines, rest)
				}
			}
			continue
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if m := reListItem.FindStringSubmatch(line); m != nil {
			text = strings.TrimSpace(m[1])
		}

		switch section {
		case "document_type":
			res.DocumentType = text
			section = ""
		case "summary":
			summaryLines = append(summaryLines, text)
		case "key_insights":
			res.KeyInsights = append(res.KeyInsights, text)
		case "recommendations":
			res.Recommendations = append(res.Recommendations, text)
		case "disclaimer":
			disclaimerLines = append(disclaimerLines, text)
		}
	}

	res.Summary = strings.Join(summaryLines, " ")
	res.Disclaimer = strings.Join(disclaimerLines, " ")

	if res.Summary == "" && len(res.KeyInsights) == 0 {
		return AnalysisResult{}, false
	}
	if !confidenceSeen {
		res.ConfidenceScore = defaultParsedConfidence
	}
	return res, true
}

func parseConfidence(s string) (float64, bool) {
	m := reNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	if strings.Contains(s, "%") || f > 1 {
		f = f / 100
	}
	if f < 0 || f > 1 {
		return 0, false
	}
	return f, true
}

func ensureSlices(res *AnalysisResult) {
	if res.KeyInsights == nil {
		res.KeyInsights = []string{}
	}
	if res.Recommendations == nil {
		res.Recommendations = []string{}
	}
}
