package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/talent-assessor/internal/models"
)

type ResponseRepository interface {
	Upsert(response *models.Response) error
	FindByID(id uuid.UUID) (*models.Response, error)
	FindByCandidateID(candidateID uuid.UUID) ([]models.Response, error)
	UpdateTranscription(id uuid.UUID, transcription string) error
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

// Upsert implements ResponseRepository. A candidate holds at most one response
// per question: resubmitting replaces the content and clears any stale
// transcription.
func (r *responseRepository) Upsert(response *models.Response) error {
	var existing models.Response
	err := r.db.
		Where("candidate_id = ? AND question_id = ?", response.CandidateID, response.QuestionID).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		if err := r.db.Create(response).Error; err != nil {
			return fmt.Errorf("failed to create response: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up response: %w", err)
	}

	result := r.db.Model(&models.Response{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"response_type": response.ResponseType,
			"content":       response.Content,
			"transcription": nil,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update response: %w", result.Error)
	}

	response.ID = existing.ID
	return nil
}

func (r *responseRepository) FindByID(id uuid.UUID) (*models.Response, error) {
	var response models.Response
	if err := r.db.Where("id = ?", id).First(&response).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("response not found")
		}
		return nil, fmt.Errorf("failed to find response: %w", err)
	}
	return &response, nil
}

func (r *responseRepository) FindByCandidateID(candidateID uuid.UUID) ([]models.Response, error) {
	var responses []models.Response
	err := r.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Find(&responses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find responses: %w", err)
	}

	return responses, nil
}

// UpdateTranscription writes the transcription field of a single response.
// This is deliberately a lone field update, not part of any larger transaction.
func (r *responseRepository) UpdateTranscription(id uuid.UUID, transcription string) error {
	result := r.db.Model(&models.Response{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"transcription": transcription,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update transcription: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("response not found")
	}

	return nil
}
