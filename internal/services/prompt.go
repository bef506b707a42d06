package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build picks the prompt variant for mode.
func (pb *PromptBuilder) Build(mode models.ResponseMode, description string, resumes []models.ResumeRecord) string {
	if mode == models.ModeNarrative {
		return pb.BuildNarrativePrompt(description, resumes)
	}
	return pb.BuildStructuredPrompt(description, resumes)
}

// BuildNarrativePrompt asks for a free text comparison of the resumes.
func (pb *PromptBuilder) BuildNarrativePrompt(description string, resumes []models.ResumeRecord) string {
	return fmt.Sprintf(`You are an experienced technical recruiter comparing several candidates for one position.

Analyze these resumes against the job description and provide:
1. Ranking from most to least suitable
2. Detailed comparison for each candidate
3. Key strengths and weaknesses
4. Recommend which candidates are the best fit

JOB DESCRIPTION:
%s

RESUMES:
%s`,
		strings.TrimSpace(description), formatResumes(resumes))
}

// BuildStructuredPrompt asks for a bare JSON array of candidate objects.
func (pb *PromptBuilder) BuildStructuredPrompt(description string, resumes []models.ResumeRecord) string {
	return fmt.Sprintf(`You are an experienced technical recruiter comparing several candidates for one position.

Analyze these resumes against the job description. Rank every candidate from most to least suitable.

JOB DESCRIPTION:
%s

RESUMES:
%s

Return ONLY a JSON array with one object per resume, using exactly this format:
[
  {
    "filename": "<filename as given above>",
    "ranking": <1 for the best fit, 2 for the next, ...>,
    "suitability_score": <integer 0-100>,
    "strengths": ["<strength>", "..."],
    "weaknesses": ["<weakness>", "..."],
    "summary": "<2-3 sentence summary of the candidate>",
    "recommendation": "<hire, interview or reject, with a short reason>"
  }
]

Do not include any explanation, markdown or text outside the JSON array.`,
		strings.TrimSpace(description), formatResumes(resumes))
}

func formatResumes(resumes []models.ResumeRecord) string {
	var sb strings.Builder
	for i, resume := range resumes {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "--- Resume %d: %s ---\n%s", i+1, resume.Filename, resume.Content)
	}
	return sb.String()
}
