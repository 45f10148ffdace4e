package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/talent-assessor/internal/models"
)

type AssessmentRepository interface {
	Create(assessment *models.Assessment) error
	FindByID(id uuid.UUID) (*models.Assessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// Create implements AssessmentRepository. Questions attached to the assessment
// are inserted in the same call.
func (r *assessmentRepository) Create(assessment *models.Assessment) error {
	if err := r.db.Create(assessment).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}

	return nil
}

// FindByID implements AssessmentRepository. Questions are preloaded in order.
func (r *assessmentRepository) FindByID(id uuid.UUID) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&assessment).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("assessment not found")
		}
		return nil, fmt.Errorf("failed to find assessment: %w", err)
	}

	return &assessment, nil
}
