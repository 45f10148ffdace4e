package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/talent-assessor/internal/models"
	"alfredoptarigan/talent-assessor/internal/services"
)

type TranscriptionHandler struct {
	transcriber services.TranscriberService
}

func NewTranscriptionHandler(transcriber services.TranscriberService) *TranscriptionHandler {
	return &TranscriptionHandler{
		transcriber: transcriber,
	}
}

// HandleTranscribe handles POST /responses/:id/transcribe. Idempotent:
// re-invoking overwrites the stored transcription.
func (h *TranscriptionHandler) HandleTranscribe(c *fiber.Ctx) error {
	responseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid response ID format",
		})
	}

	transcription, err := h.transcriber.TranscribeResponse(c.UserContext(), responseID)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedReference) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		var transcriptionErr *services.TranscriptionError
		if errors.As(err, &transcriptionErr) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": transcriptionErr.Error(),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to transcribe response",
		})
	}

	return c.JSON(models.TranscriptionResponse{
		ResponseID:    responseID.String(),
		Transcription: transcription,
	})
}
