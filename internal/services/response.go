package services

import (
	"encoding/json"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// cleanJSON strips a surrounding markdown code fence, if any.
func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseCandidates parses the model reply as JSON. The value is not
// checked against the Candidate shape.
func ParseCandidates(raw string) (json.RawMessage, error) {
	var parsed json.RawMessage
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &parsed); err != nil {
		return nil, internalError("Failed to parse AI response as JSON", err)
	}
	return parsed, nil
}

// DecodeCandidates converts parsed candidates into typed values for export.
func DecodeCandidates(raw json.RawMessage) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, internalError("AI response does not match the candidate format", err)
	}
	return candidates, nil
}
