package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/talent-assessor/internal/models"
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uuid.UUID) (*models.Candidate, error)
	UpdateStatus(id uuid.UUID, status models.CandidateStatus) error
	ClaimForAnalysis(id uuid.UUID) (bool, error)
	FindSubmitted(limit int) ([]models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate not found")
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) UpdateStatus(id uuid.UUID, status models.CandidateStatus) error {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update candidate status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}

	return nil
}

// ClaimForAnalysis atomically moves a SUBMITTED candidate to ANALYZING. The
// conditional update makes the claim exclusive: when the handler and the poller
// both enqueue the same submission, only one worker wins.
func (r *candidateRepository) ClaimForAnalysis(id uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ? AND status = ?", id, models.CandidateSubmitted).
		Updates(map[string]interface{}{
			"status":     models.CandidateAnalyzing,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to claim candidate: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// FindSubmitted returns submitted candidates awaiting the analysis pipeline,
// oldest first.
func (r *candidateRepository) FindSubmitted(limit int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("status = ?", models.CandidateSubmitted).
		Order("updated_at ASC").
		Limit(limit).
		Find(&candidates).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find submitted candidates: %w", err)
	}

	return candidates, nil
}
