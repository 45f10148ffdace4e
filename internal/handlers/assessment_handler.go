package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/talent-assessor/internal/models"
	"alfredoptarigan/talent-assessor/internal/repositories"
	"alfredoptarigan/talent-assessor/internal/services"
)

type AssessmentHandler struct {
	generator      services.GeneratorService
	assessmentRepo repositories.AssessmentRepository
}

func NewAssessmentHandler(
	generator services.GeneratorService,
	assessmentRepo repositories.AssessmentRepository,
) *AssessmentHandler {
	return &AssessmentHandler{
		generator:      generator,
		assessmentRepo: assessmentRepo,
	}
}

// HandleGenerate handles POST /assessments/generate
func (h *AssessmentHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.AssessmentRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobTitle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_title is required",
		})
	}

	if req.ExperienceLevel == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "experience_level is required",
		})
	}

	if len(req.RequiredSkills) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "required_skills must not be empty",
		})
	}

	if req.AssessmentType != "" {
		switch models.AssessmentType(req.AssessmentType) {
		case models.AssessmentTechnical, models.AssessmentBehavioral, models.AssessmentMixed:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "assessment_type must be TECHNICAL, BEHAVIORAL or MIXED",
			})
		}
	}

	generated, err := h.generator.Generate(c.UserContext(), req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate assessment",
		})
	}

	assessmentType := models.AssessmentType(req.AssessmentType)
	if assessmentType == "" {
		assessmentType = models.AssessmentMixed
	}

	assessment := &models.Assessment{
		ID:              uuid.New(),
		Title:           generated.Title,
		Description:     generated.Description,
		JobTitle:        req.JobTitle,
		ExperienceLevel: req.ExperienceLevel,
		RequiredSkills:  req.RequiredSkills,
		CompanyContext:  req.CompanyContext,
		Type:            assessmentType,
		MaxDuration:     generated.MaxDuration,
		PassingScore:    generated.PassingScore,
		AIAnalysis:      generated.AIAnalysis,
		CreatedBy:       req.CreatedBy,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	for _, q := range generated.Questions {
		assessment.Questions = append(assessment.Questions, models.Question{
			ID:           uuid.New(),
			AssessmentID: assessment.ID,
			Text:         q.Text,
			Type:         models.QuestionType(q.Type),
			Difficulty:   models.QuestionDifficulty(q.Difficulty),
			Skill:        q.Skill,
			Order:        q.Order,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		})
	}

	if err := h.assessmentRepo.Create(assessment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save assessment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(assessment)
}

// HandleGet handles GET /assessments/:id
func (h *AssessmentHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assessment ID format",
		})
	}

	assessment, err := h.assessmentRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}

	return c.JSON(assessment)
}
