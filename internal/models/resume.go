package models

// ResumeRecord pairs an uploaded filename with its extracted text.
type ResumeRecord struct {
	Filename string
	Content  string
}

// Candidate is one entry of the structured ranking returned by the model.
type Candidate struct {
	Filename         string   `json:"filename"`
	Ranking          int      `json:"ranking"`
	SuitabilityScore int      `json:"suitability_score"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Summary          string   `json:"summary"`
	Recommendation   string   `json:"recommendation"`
}
