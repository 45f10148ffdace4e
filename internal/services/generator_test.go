package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"alfredoptarigan/talent-assessor/internal/models"
)

func backendEngineerRequest() models.AssessmentRequest {
	return models.AssessmentRequest{
		JobTitle:          "Backend Engineer",
		ExperienceLevel:   "Senior",
		RequiredSkills:    []string{"Go", "PostgreSQL"},
		AssessmentType:    string(models.AssessmentTechnical),
		NumberOfQuestions: 3,
		Duration:          45,
	}
}

func TestGenerateProducesValidatedAssessment(t *testing.T) {
	var capturedPrompt string
	gemini := &fakeGemini{
		structuredFn: func(prompt string, target interface{}) error {
			capturedPrompt = prompt
			payload := `{
				"title": "Senior Backend Engineer Assessment",
				"description": "Evaluates Go and PostgreSQL depth.",
				"maxDuration": 45,
				"passingScore": 70,
				"aiAnalysis": true,
				"questions": [
					{"text": "Explain goroutine scheduling.", "type": "text", "difficulty": "easy", "skill": "Go", "order": 0},
					{"text": "Walk through a schema migration you ran.", "type": "VIDEO", "difficulty": "MEDIUM", "skill": "PostgreSQL", "order": 2},
					{"text": "Design a rate limiter.", "type": "AUDIO", "difficulty": "HARD", "skill": "Go", "order": 3}
				]
			}`
			return json.Unmarshal([]byte(payload), target)
		},
	}

	generator := NewGeneratorService(gemini)

	generated, err := generator.Generate(context.Background(), backendEngineerRequest())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if generated.Title == "" {
		t.Error("expected a title")
	}
	if len(generated.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(generated.Questions))
	}

	// Lowercase enums from the model are normalized.
	if generated.Questions[0].Type != "TEXT" {
		t.Errorf("expected normalized type TEXT, got %q", generated.Questions[0].Type)
	}
	if generated.Questions[0].Difficulty != "EASY" {
		t.Errorf("expected normalized difficulty EASY, got %q", generated.Questions[0].Difficulty)
	}

	// A missing or zero order defaults to the question's position.
	if generated.Questions[0].Order != 1 {
		t.Errorf("expected defaulted order 1, got %d", generated.Questions[0].Order)
	}
	if generated.Questions[1].Order != 2 {
		t.Errorf("expected explicit order preserved, got %d", generated.Questions[1].Order)
	}

	for _, fragment := range []string{"Backend Engineer", "Senior", "Go, PostgreSQL", "exactly 3"} {
		if !strings.Contains(capturedPrompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}

func TestGeneratePropagatesProviderFailure(t *testing.T) {
	gemini := &fakeGemini{
		structuredFn: func(prompt string, target interface{}) error {
			return fmt.Errorf("quota exceeded")
		},
	}

	generator := NewGeneratorService(gemini)

	if _, err := generator.Generate(context.Background(), backendEngineerRequest()); err == nil {
		t.Fatal("expected error when generation fails")
	}
}

func TestGenerateRejectsInvalidOutput(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{
			name:    "no questions",
			payload: `{"title": "Assessment", "questions": []}`,
		},
		{
			name:    "missing title",
			payload: `{"title": "", "questions": [{"text": "Q", "type": "TEXT", "difficulty": "EASY"}]}`,
		},
		{
			name:    "invalid question type",
			payload: `{"title": "Assessment", "questions": [{"text": "Q", "type": "ESSAY", "difficulty": "EASY"}]}`,
		},
		{
			name:    "invalid difficulty",
			payload: `{"title": "Assessment", "questions": [{"text": "Q", "type": "TEXT", "difficulty": "EXTREME"}]}`,
		},
		{
			name:    "empty question text",
			payload: `{"title": "Assessment", "questions": [{"text": "  ", "type": "TEXT", "difficulty": "EASY"}]}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gemini := &fakeGemini{
				structuredFn: func(prompt string, target interface{}) error {
					return json.Unmarshal([]byte(tc.payload), target)
				},
			}

			generator := NewGeneratorService(gemini)

			if _, err := generator.Generate(context.Background(), backendEngineerRequest()); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestGenerateClampsPassingScore(t *testing.T) {
	gemini := &fakeGemini{
		structuredFn: func(prompt string, target interface{}) error {
			payload := `{
				"title": "Assessment",
				"passingScore": 150,
				"questions": [{"text": "Q", "type": "TEXT", "difficulty": "EASY"}]
			}`
			return json.Unmarshal([]byte(payload), target)
		},
	}

	generator := NewGeneratorService(gemini)

	generated, err := generator.Generate(context.Background(), backendEngineerRequest())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if generated.PassingScore != 100 {
		t.Errorf("expected passing score clamped to 100, got %d", generated.PassingScore)
	}
}
