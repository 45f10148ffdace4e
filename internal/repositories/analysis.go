package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/talent-assessor/internal/models"
)

type AnalysisRepository interface {
	Upsert(analysis *models.Analysis) error
	FindByCandidateID(candidateID uuid.UUID) (*models.Analysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Upsert implements AnalysisRepository. Analyses are keyed by candidate: a
// second run overwrites the prior record and advances its updated_at rather
// than inserting a duplicate.
func (r *analysisRepository) Upsert(analysis *models.Analysis) error {
	var existing models.Analysis
	err := r.db.Where("candidate_id = ?", analysis.CandidateID).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		if err := r.db.Create(analysis).Error; err != nil {
			return fmt.Errorf("failed to create analysis: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up analysis: %w", err)
	}

	analysis.ID = existing.ID
	analysis.CreatedAt = existing.CreatedAt
	analysis.UpdatedAt = time.Now()

	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", existing.ID).
		Select("*").
		Omit("id", "candidate_id", "created_at").
		Updates(analysis)

	if result.Error != nil {
		return fmt.Errorf("failed to update analysis: %w", result.Error)
	}

	return nil
}

func (r *analysisRepository) FindByCandidateID(candidateID uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("candidate_id = ?", candidateID).First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("analysis not found")
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}
