package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Ranked Candidates"
)

var candidateHeaders = []string{
	"Ranking", "Filename", "Suitability Score", "Strengths", "Weaknesses", "Summary", "Recommendation",
}

// ExportCandidatesWorkbook renders the structured ranking as an xlsx
// workbook, ordered by ranking.
func ExportCandidatesWorkbook(candidates []models.Candidate, description string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	index, err := f.NewSheet(CandidatesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummarySheet(f, candidates, description, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writeCandidatesSheet(f, candidates, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}

	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeSummarySheet(f *excelize.File, candidates []models.Candidate, description string, headerStyle int) error {
	f.SetColWidth(SummarySheet, "A", "A", 25)
	f.SetColWidth(SummarySheet, "B", "B", 80)

	rows := [][]interface{}{
		{"Resume Analysis Report"},
		{},
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Candidates:", len(candidates)},
		{"Job Description:", strings.TrimSpace(description)},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetCellStyle(SummarySheet, "A1", "B1", headerStyle)
}

func writeCandidatesSheet(f *excelize.File, candidates []models.Candidate, headerStyle int) error {
	ranked := make([]models.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Ranking < ranked[j].Ranking
	})

	header := make([]interface{}, len(candidateHeaders))
	for i, h := range candidateHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(CandidatesSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(CandidatesSheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	for i, c := range ranked {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			c.Ranking,
			c.Filename,
			c.SuitabilityScore,
			strings.Join(c.Strengths, "\n"),
			strings.Join(c.Weaknesses, "\n"),
			c.Summary,
			c.Recommendation,
		}
		if err := f.SetSheetRow(CandidatesSheet, cell, &row); err != nil {
			return err
		}
	}

	f.SetColWidth(CandidatesSheet, "A", "A", 10)
	f.SetColWidth(CandidatesSheet, "B", "B", 35)
	f.SetColWidth(CandidatesSheet, "C", "C", 18)
	f.SetColWidth(CandidatesSheet, "D", "G", 50)

	return nil
}
