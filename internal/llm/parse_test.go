package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisDirectJSON(t *testing.T) {
	raw := `{"document_type":"Invoice","summary":"A phone bill.","key_insights":["Total is $42"],"recommendations":[],"confidence_score":0.9}`

	res, err := ParseAnalysis(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Invoice", res.DocumentType)
	assert.Equal(t, "A phone bill.", res.Summary)
	assert.Equal(t, []string{"Total is $42"}, res.KeyInsights)
	assert.NotNil(t, res.Recommendations)
	assert.Equal(t, 0.9, res.ConfidenceScore)
}

func TestParseAnalysisFencedJSON(t *testing.T) {
	raw := "Here is the analysis you asked for:\n```json\n" +
		`{"document_type":"Report","summary":"Quarterly numbers.","key_insights":["Revenue up"],"confidence_score":0.7}` +
		"\n```\nLet me know if you need more."

	res, err := ParseAnalysis(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Report", res.DocumentType)
	assert.Equal(t, []string{"Revenue up"}, res.KeyInsights)
}

func TestParseAnalysisEmbeddedJSONWithSynonyms(t *testing.T) {
	raw := `Sure! {"type":"Letter","summary":"A cover letter.","insights":"Strong opening","confidence":"80%"} hope that helps`

	res, err := ParseAnalysis(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Letter", res.DocumentType)
	assert.Equal(t, []string{"Strong opening"}, res.KeyInsights)
	assert.InDelta(t, 0.8, res.ConfidenceScore, 1e-9)
}

func TestParseAnalysisLabeledSections(t *testing.T) {
	raw := `
Document Type: Medical Laboratory Report
============================================================
SUMMARY:
----------------------------------------
Overall the panel looks healthy with one flag.

KEY INSIGHTS:
1. Hemoglobin 15.0 g/dL is within range
2. Platelets 200 thou/uL is normal

RECOMMENDATIONS:
- Repeat the panel in 6 months

Confidence: 85%
`
	res, err := ParseAnalysis(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Medical Laboratory Report", res.DocumentType)
	assert.Contains(t, res.Summary, "one flag")
	require.Len(t, res.KeyInsights, 2)
	assert.Equal(t, "Hemoglobin 15.0 g/dL is within range", res.KeyInsights[0])
	assert.Equal(t, []string{"Repeat the panel in 6 months"}, res.Recommendations)
	assert.InDelta(t, 0.85, res.ConfidenceScore, 1e-9)
}

func TestParseAnalysisLabeledSectionsDefaultConfidence(t *testing.T) {
	raw := "Summary: something useful.\nKey insights:\n- a point"

	res, err := ParseAnalysis(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultParsedConfidence, res.ConfidenceScore)
}

func TestParseAnalysisGarbage(t *testing.T) {
	_, err := ParseAnalysis("I cannot help with that.", nil)
	assert.Error(t, err)

	_, err = ParseAnalysis("", nil)
	assert.Error(t, err)
}

func TestExtractJSONCandidate(t *testing.T) {
	_, ok := ExtractJSONCandidate("no braces here")
	assert.False(t, ok)

	c, ok := ExtractJSONCandidate(` {"a":1} `)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, c)

	c, ok = ExtractJSONCandidate("prefix {\"a\":1} suffix")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, c)
}
