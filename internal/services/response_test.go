package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bare array", raw: `[{"filename":"a.pdf","ranking":1}]`, want: `[{"filename":"a.pdf","ranking":1}]`},
		{name: "json fence", raw: "```json\n[{\"ranking\":1}]\n```", want: `[{"ranking":1}]`},
		{name: "plain fence", raw: "```\n[]\n```", want: `[]`},
		{name: "unexpected shape passes through", raw: `{"top":"alice"}`, want: `{"top":"alice"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCandidates(tt.raw)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestParseCandidatesRejectsInvalidJSON(t *testing.T) {
	for _, raw := range []string{"not json", "", "Here is the ranking: [1,2"} {
		_, err := ParseCandidates(raw)
		ae, ok := AsAnalysisError(err)
		require.True(t, ok, raw)
		assert.Equal(t, 500, ae.StatusCode())
		assert.Contains(t, ae.Error(), "Failed to parse AI response as JSON")
	}
}

func TestDecodeCandidates(t *testing.T) {
	raw, err := ParseCandidates(`[{"filename":"a.pdf","ranking":2,"suitability_score":71,"strengths":["Go"],"weaknesses":[],"summary":"s","recommendation":"r"}]`)
	require.NoError(t, err)

	candidates, err := DecodeCandidates(raw)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "a.pdf", candidates[0].Filename)
	assert.Equal(t, 71, candidates[0].SuitabilityScore)
	assert.Equal(t, []string{"Go"}, candidates[0].Strengths)

	_, err = DecodeCandidates([]byte(`{"top":"alice"}`))
	assert.Error(t, err)
}
