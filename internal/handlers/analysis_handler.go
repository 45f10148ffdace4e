package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/talent-assessor/internal/repositories"
	"alfredoptarigan/talent-assessor/internal/services"
)

type AnalysisHandler struct {
	analyzer     services.AnalyzerService
	analysisRepo repositories.AnalysisRepository
}

func NewAnalysisHandler(
	analyzer services.AnalyzerService,
	analysisRepo repositories.AnalysisRepository,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:     analyzer,
		analysisRepo: analysisRepo,
	}
}

// HandleAnalyze handles POST /candidates/:id/analyze. The analyzer degrades
// internally, so a failure here means the candidate could not be loaded or the
// result could not be stored.
func (h *AnalysisHandler) HandleAnalyze(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	analysis, err := h.analyzer.Analyze(c.UserContext(), candidateID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze candidate",
		})
	}

	return c.JSON(analysis)
}

// HandleGetAnalysis handles GET /candidates/:id/analysis
func (h *AnalysisHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByCandidateID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	return c.JSON(analysis)
}
