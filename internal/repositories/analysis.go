package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

type AnalysisRepository interface {
	Create(record *models.AnalysisRecord) error
	FindByRequestID(requestID string) (*models.AnalysisRecord, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(record *models.AnalysisRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByRequestID(requestID string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	if err := r.db.Where("request_id = ?", requestID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to find analysis record: %w", err)
	}
	return &record, nil
}

// noopAnalysisRepository is used when DB_ENABLED is false.
type noopAnalysisRepository struct{}

func NewNoopAnalysisRepository() AnalysisRepository {
	return noopAnalysisRepository{}
}

func (noopAnalysisRepository) Create(*models.AnalysisRecord) error {
	return nil
}

func (noopAnalysisRepository) FindByRequestID(string) (*models.AnalysisRecord, error) {
	return nil, ErrAnalysisNotFound
}
