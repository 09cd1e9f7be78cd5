package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMap(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestSanitizeRenamesSynonyms(t *testing.T) {
	raw := []byte(`{"doc_type":"Report","executive_summary":"Short.","insights":["a"],"confidence":0.8}`)
	out, dropped, err := NormalizeAndSanitizeJSON(raw, nil)
	require.NoError(t, err)

	m := mustMap(t, out)
	assert.Equal(t, "Report", m["document_type"])
	assert.Equal(t, "Short.", m["summary"])
	assert.Equal(t, []any{"a"}, m["key_insights"])
	assert.Equal(t, 0.8, m["confidence_score"])
	assert.Contains(t, dropped, "doc_type->document_type")
}

func TestSanitizeCoercesConfidence(t *testing.T) {
	cases := map[string]float64{
		`{"confidence_score":"0.75"}`: 0.75,
		`{"confidence_score":"85%"}`:  0.85,
		`{"confidence_score":90}`:     0.9,
		`{"confidence_score":1.7}`:    0.017,
		`{"confidence_score":-3}`:     0,
	}
	for raw, want := range cases {
		out, _, err := NormalizeAndSanitizeJSON([]byte(raw), nil)
		require.NoError(t, err, raw)
		m := mustMap(t, out)
		assert.InDelta(t, want, m["confidence_score"], 1e-9, raw)
	}
}

func TestSanitizeCoercesListFields(t *testing.T) {
	raw := []byte(`{"key_insights":"just one","recommendations":[" a ","",null,{"item":"b"},3]}`)
	out, _, err := NormalizeAndSanitizeJSON(raw, nil)
	require.NoError(t, err)

	m := mustMap(t, out)
	assert.Equal(t, []any{"just one"}, m["key_insights"])
	assert.Equal(t, []any{"a", "b", "3"}, m["recommendations"])
}

func TestSanitizeDropsUnknownAndEmpty(t *testing.T) {
	raw := []byte(`{"document_type":" Invoice ","summary":"ok","main_topics":["x"],"structured_data":{"a":1},"disclaimer":"  "}`)
	out, dropped, err := NormalizeAndSanitizeJSON(raw, nil)
	require.NoError(t, err)

	m := mustMap(t, out)
	assert.Equal(t, "Invoice", m["document_type"])
	assert.NotContains(t, m, "main_topics")
	assert.NotContains(t, m, "structured_data")
	assert.NotContains(t, m, "disclaimer")
	assert.Contains(t, dropped, "main_topics(unknown)")
}

func TestSanitizeJoinsSummaryList(t *testing.T) {
	raw := []byte(`{"summary":["First sentence.","Second sentence."]}`)
	out, _, err := NormalizeAndSanitizeJSON(raw, nil)
	require.NoError(t, err)

	m := mustMap(t, out)
	assert.Equal(t, "First sentence. Second sentence.", m["summary"])
}

func TestSanitizeInvalidJSON(t *testing.T) {
	_, _, err := NormalizeAndSanitizeJSON([]byte("not json"), nil)
	assert.Error(t, err)
}
