package models

import (
	"encoding/json"
	"strings"
	"time"
)

type AnalysisResponse struct {
	Success        bool            `json:"success"`
	Analysis       *string         `json:"analysis,omitempty"`
	Candidates     json.RawMessage `json:"candidates,omitempty"`
	RequestID      string          `json:"request_id"`
	Timestamp      string          `json:"timestamp"`
	ProcessedFiles int             `json:"processed_files"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details,omitempty"`
}

type AnalysisRecordResponse struct {
	RequestID      string    `json:"request_id"`
	Mode           string    `json:"mode"`
	Status         string    `json:"status"`
	ProcessedFiles int       `json:"processed_files"`
	Filenames      []string  `json:"filenames"`
	ErrorMessage   *string   `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewAnalysisRecordResponse(record *AnalysisRecord) AnalysisRecordResponse {
	filenames := []string{}
	if record.Filenames != "" {
		filenames = strings.Split(record.Filenames, "\n")
	}

	return AnalysisRecordResponse{
		RequestID:      record.RequestID,
		Mode:           string(record.Mode),
		Status:         string(record.Status),
		ProcessedFiles: record.ProcessedFiles,
		Filenames:      filenames,
		ErrorMessage:   record.ErrorMessage,
		CreatedAt:      record.CreatedAt,
	}
}
