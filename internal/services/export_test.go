package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func TestExportCandidatesWorkbook(t *testing.T) {
	candidates := []models.Candidate{
		{Filename: "bob.pdf", Ranking: 2, SuitabilityScore: 60, Strengths: []string{"Rust"}, Summary: "ok", Recommendation: "interview"},
		{Filename: "alice.pdf", Ranking: 1, SuitabilityScore: 90, Strengths: []string{"Go", "SQL"}, Weaknesses: []string{"Java"}, Summary: "great", Recommendation: "hire"},
	}

	buf, err := ExportCandidatesWorkbook(candidates, "Senior backend engineer")
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, CandidatesSheet}, f.GetSheetList())

	rows, err := f.GetRows(CandidatesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, candidateHeaders, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "alice.pdf", rows[1][1])
	assert.Equal(t, "Go\nSQL", rows[1][3])
	assert.Equal(t, "bob.pdf", rows[2][1])

	desc, err := f.GetCellValue(SummarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "Senior backend engineer", desc)
}

func TestExportCandidatesWorkbookEmpty(t *testing.T) {
	buf, err := ExportCandidatesWorkbook(nil, "role")
	require.NoError(t, err)
	assert.Positive(t, buf.Len())
}
