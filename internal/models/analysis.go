package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ResponseMode string

const (
	ModeNarrative  ResponseMode = "narrative"
	ModeStructured ResponseMode = "structured"
)

func ParseResponseMode(s string) (ResponseMode, error) {
	switch ResponseMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeNarrative:
		return ModeNarrative, nil
	case ModeStructured:
		return ModeStructured, nil
	default:
		return "", fmt.Errorf("unsupported response mode %q", s)
	}
}

type AnalysisStatus string

const (
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// AnalysisRecord is the history row kept for each analyze request.
// Resume bytes and extracted text are never stored.
type AnalysisRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequestID      string         `gorm:"type:text;uniqueIndex;not null" json:"request_id"`
	Mode           ResponseMode   `gorm:"type:text;not null" json:"mode"`
	Status         AnalysisStatus `gorm:"type:text;not null" json:"status"`
	ProcessedFiles int            `gorm:"not null;default:0" json:"processed_files"`
	Filenames      string         `gorm:"type:text" json:"filenames"`
	ErrorMessage   *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "analyses"
}
