package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/talent-assessor/internal/models"
)

type GeneratorService interface {
	Generate(ctx context.Context, req models.AssessmentRequest) (*models.GeneratedAssessment, error)
}

type generatorService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

func NewGeneratorService(geminiService GeminiService) GeneratorService {
	return &generatorService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
	}
}

// Generate implements GeneratorService. There is no fallback tier here: a
// schema violation or provider failure propagates to the HTTP layer.
func (g *generatorService) Generate(ctx context.Context, req models.AssessmentRequest) (*models.GeneratedAssessment, error) {
	prompt := g.promptBuilder.BuildAssessmentPrompt(req)

	var generated models.GeneratedAssessment
	if err := g.geminiService.GenerateStructured(ctx, prompt, assessmentSchema(), &generated); err != nil {
		return nil, fmt.Errorf("failed to generate assessment: %w", err)
	}

	if err := validateGeneratedAssessment(&generated); err != nil {
		return nil, fmt.Errorf("generated assessment is invalid: %w", err)
	}

	return &generated, nil
}

func validateGeneratedAssessment(generated *models.GeneratedAssessment) error {
	if strings.TrimSpace(generated.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if len(generated.Questions) == 0 {
		return fmt.Errorf("no questions generated")
	}

	for i := range generated.Questions {
		q := &generated.Questions[i]
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}

		q.Type = strings.ToUpper(strings.TrimSpace(q.Type))
		switch models.QuestionType(q.Type) {
		case models.QuestionVideo, models.QuestionAudio, models.QuestionText:
		default:
			return fmt.Errorf("question %d has invalid type %q", i+1, q.Type)
		}

		q.Difficulty = strings.ToUpper(strings.TrimSpace(q.Difficulty))
		switch models.QuestionDifficulty(q.Difficulty) {
		case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		default:
			return fmt.Errorf("question %d has invalid difficulty %q", i+1, q.Difficulty)
		}

		if q.Order <= 0 {
			q.Order = i + 1
		}
	}

	if generated.PassingScore < 0 {
		generated.PassingScore = 0
	}
	if generated.PassingScore > 100 {
		generated.PassingScore = 100
	}

	return nil
}

func assessmentSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":        {Type: genai.TypeString},
			"description":  {Type: genai.TypeString},
			"maxDuration":  {Type: genai.TypeInteger},
			"passingScore": {Type: genai.TypeInteger},
			"aiAnalysis":   {Type: genai.TypeBoolean},
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text":       {Type: genai.TypeString},
						"type":       {Type: genai.TypeString, Enum: []string{"VIDEO", "AUDIO", "TEXT"}},
						"difficulty": {Type: genai.TypeString, Enum: []string{"EASY", "MEDIUM", "HARD"}},
						"skill":      {Type: genai.TypeString},
						"order":      {Type: genai.TypeInteger},
					},
					Required: []string{"text", "type", "difficulty"},
				},
			},
		},
		Required: []string{"title", "description", "maxDuration", "passingScore", "aiAnalysis", "questions"},
	}
}
