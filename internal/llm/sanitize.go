package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"
)

// NormalizeAndSanitizeJSON
// - Renames known synonyms (insights -> key_insights, confidence -> confidence_score, ...)
// - Drops null/empty optionals
// - Coerces string -> array for insight fields and string/percent -> number for confidence
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			// don't overwrite existing value if already present
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to our schema
	renamed("type", "document_type")
	renamed("doc_type", "document_type")
	renamed("documentType", "document_type")
	renamed("executive_summary", "summary")
	renamed("detailed_summary", "summary")
	renamed("insights", "key_insights")
	renamed("key_points", "key_insights")
	renamed("key_findings", "key_insights")
	renamed("findings", "key_insights")
	renamed("interpretations", "key_insights")
	renamed("recommendation", "recommendations")
	renamed("next_steps", "recommendations")
	renamed("confidence", "confidence_score")

	// 2) coerce list fields: single string -> one-element list, stringify items
	listFields := []string{"key_insights", "recommendations"}
	coerceList := func(k string) {
		v, ok := m[k]
		if !ok {
			return
		}
		switch t := v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = []any{s}
			}
		case []any:
			out := make([]any, 0, len(t))
			for _, item := range t {
				switch it := item.(type) {
				case string:
					if s := strings.TrimSpace(it); s != "" {
						out = append(out, s)
					}
				case map[string]any:
					// models sometimes emit {"insight": "..."} objects; keep the values
					for _, val := range it {
						if s, ok := val.(string); ok && strings.TrimSpace(s) != "" {
							out = append(out, strings.TrimSpace(s))
						}
					}
				case float64, bool:
					out = append(out, fmt.Sprintf("%v", it))
				}
			}
			m[k] = out
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}
	for _, k := range listFields {
		coerceList(k)
	}

	// 3) coerce confidence_score to a number in [0,1]; accept strings and percents
	if v, ok := m["confidence_score"]; ok {
		f, ok := asFloat(v)
		if !ok {
			delete(m, "confidence_score")
			dropped = append(dropped, "confidence_score(type)")
		} else {
			if f > 1 && f <= 100 {
				f = f / 100
				dropped = append(dropped, "confidence_score(percent)")
			}
			if f < 0 {
				f = 0
			}
			if f > 1 {
				f = 1
			}
			m["confidence_score"] = f
		}
	}

	// 4) summary may arrive as a list of sentences; join it
	if v, ok := m["summary"].([]any); ok {
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		m["summary"] = strings.Join(parts, " ")
		dropped = append(dropped, "summary(list)")
	}

	// 5) remove unknown keys (everything not in the schema set below)
	allowed := map[string]struct{}{
		"document_type": {}, "summary": {}, "key_insights": {},
		"recommendations": {}, "confidence_score": {}, "disclaimer": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	// 6) trim obvious strings, drop empties
	trimKeys := []string{"document_type", "summary", "disclaimer"}
	for _, k := range trimKeys {
		if v, ok := m[k].(string); ok {
			s := strings.TrimSpace(v)
			if s == "" {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Debug("llm.parse.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "%"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		if strings.HasSuffix(strings.TrimSpace(t), "%") {
			f = f / 100
		}
		return f, true
	default:
		return 0, false
	}
}
