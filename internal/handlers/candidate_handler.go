package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/talent-assessor/internal/models"
	"alfredoptarigan/talent-assessor/internal/repositories"
	"alfredoptarigan/talent-assessor/internal/services"
)

type CandidateHandler struct {
	candidateRepo  repositories.CandidateRepository
	assessmentRepo repositories.AssessmentRepository
	responseRepo   repositories.ResponseRepository
	worker         services.Worker
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	assessmentRepo repositories.AssessmentRepository,
	responseRepo repositories.ResponseRepository,
	worker services.Worker,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo:  candidateRepo,
		assessmentRepo: assessmentRepo,
		responseRepo:   responseRepo,
		worker:         worker,
	}
}

// HandleRegister handles POST /assessments/:id/candidates
func (h *CandidateHandler) HandleRegister(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assessment ID format",
		})
	}

	var req models.RegisterCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	assessment, err := h.assessmentRepo.FindByID(assessmentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}

	candidate := &models.Candidate{
		ID:           uuid.New(),
		AssessmentID: assessment.ID,
		Name:         req.Name,
		Email:        req.Email,
		Position:     req.Position,
		ResumeURL:    req.ResumeURL,
		Status:       models.CandidateInvited,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.candidateRepo.Create(candidate); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create candidate",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(candidate)
}

// HandleRecordResponse handles POST /candidates/:id/responses. One response
// per question: resubmitting a question overwrites the earlier answer.
func (h *CandidateHandler) HandleRecordResponse(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	var req models.ResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question_id format",
		})
	}

	switch models.QuestionType(req.ResponseType) {
	case models.QuestionVideo, models.QuestionAudio, models.QuestionText:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "response_type must be VIDEO, AUDIO or TEXT",
		})
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	assessment, err := h.assessmentRepo.FindByID(candidate.AssessmentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}

	if !assessmentHasQuestion(assessment, questionID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question_id does not belong to the candidate's assessment",
		})
	}

	response := &models.Response{
		ID:           uuid.New(),
		CandidateID:  candidate.ID,
		QuestionID:   questionID,
		ResponseType: models.QuestionType(req.ResponseType),
		Content:      req.Content,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.responseRepo.Upsert(response); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save response",
		})
	}

	if candidate.Status == models.CandidateInvited {
		if err := h.candidateRepo.UpdateStatus(candidate.ID, models.CandidateInProgress); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update candidate status",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func assessmentHasQuestion(assessment *models.Assessment, questionID uuid.UUID) bool {
	for _, question := range assessment.Questions {
		if question.ID == questionID {
			return true
		}
	}
	return false
}

// HandleSubmit handles POST /candidates/:id/submit. The pipeline (transcribe,
// analyze, notify) runs asynchronously; the submission is acknowledged
// immediately.
func (h *CandidateHandler) HandleSubmit(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	if err := h.candidateRepo.UpdateStatus(candidate.ID, models.CandidateSubmitted); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit assessment",
		})
	}

	h.worker.EnqueueSubmission(candidate.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.SubmitResponse{
		ID:     candidate.ID.String(),
		Status: string(models.CandidateSubmitted),
	})
}
