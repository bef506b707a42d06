package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func TestPromptBuilder(t *testing.T) {
	pb := NewPromptBuilder()
	resumes := []models.ResumeRecord{
		{Filename: "alice.pdf", Content: "Alice writes Go"},
		{Filename: "bob.pdf", Content: "Bob writes Rust"},
	}

	narrative := pb.Build(models.ModeNarrative, "  Senior backend engineer \n", resumes)
	assert.Contains(t, narrative, "Senior backend engineer\n")
	assert.Contains(t, narrative, "Ranking from most to least suitable")
	assert.NotContains(t, narrative, "JSON")

	structured := pb.Build(models.ModeStructured, "Senior backend engineer", resumes)
	for _, field := range []string{"filename", "ranking", "suitability_score", "strengths", "weaknesses", "summary", "recommendation"} {
		assert.Contains(t, structured, `"`+field+`"`)
	}
	assert.Contains(t, structured, "Return ONLY a JSON array")

	for _, prompt := range []string{narrative, structured} {
		assert.Contains(t, prompt, "alice.pdf")
		assert.Contains(t, prompt, "Alice writes Go")
		assert.Less(t, strings.Index(prompt, "alice.pdf"), strings.Index(prompt, "bob.pdf"))
	}
}

func TestPromptBuilderKeepsFullResumeText(t *testing.T) {
	long := strings.Repeat("experience ", 20000)
	prompt := NewPromptBuilder().BuildStructuredPrompt("role", []models.ResumeRecord{{Filename: "a.pdf", Content: long}})
	assert.Contains(t, prompt, long)
}
