package services

import (
	"strings"
	"testing"

	"alfredoptarigan/talent-assessor/internal/models"
)

func TestBuildAnalysisPromptUsesPlaceholderForMissingResume(t *testing.T) {
	pb := NewPromptBuilder()
	assessment := &models.Assessment{JobTitle: "Backend Engineer", ExperienceLevel: "Senior", RequiredSkills: []string{"Go"}}

	prompt := pb.BuildAnalysisPrompt(assessment, "   ", nil, "")
	if !strings.Contains(prompt, ResumePlaceholder) {
		t.Errorf("blank resume text should be replaced by the placeholder")
	}
}

func TestBuildAnalysisPromptIncludesRetrievedContext(t *testing.T) {
	pb := NewPromptBuilder()
	assessment := &models.Assessment{JobTitle: "Backend Engineer", ExperienceLevel: "Senior", RequiredSkills: []string{"Go"}}

	prompt := pb.BuildAnalysisPrompt(assessment, "resume", nil, "On-call rotation is required.")
	if !strings.Contains(prompt, "ADDITIONAL JOB CONTEXT") {
		t.Errorf("context section missing")
	}
	if !strings.Contains(prompt, "On-call rotation is required.") {
		t.Errorf("context text missing")
	}

	withoutContext := pb.BuildAnalysisPrompt(assessment, "resume", nil, "")
	if strings.Contains(withoutContext, "ADDITIONAL JOB CONTEXT") {
		t.Errorf("empty context should not render a context section")
	}
}

func TestBuildDegradedAnalysisPromptTruncates(t *testing.T) {
	pb := NewPromptBuilder()
	assessment := &models.Assessment{JobTitle: "Backend Engineer"}

	longResume := strings.Repeat("r", 5000)
	pairs := []QuestionAnswer{{Number: 1, Question: strings.Repeat("q", 500), Answer: strings.Repeat("a", 1000)}}

	prompt := pb.BuildDegradedAnalysisPrompt(assessment, longResume, pairs)

	if strings.Contains(prompt, strings.Repeat("r", 1600)) {
		t.Errorf("resume should be truncated to keep the degraded prompt small")
	}
	if strings.Contains(prompt, strings.Repeat("a", 400)) {
		t.Errorf("answers should be truncated")
	}
	if !strings.Contains(prompt, "...") {
		t.Errorf("truncation marker missing")
	}
}

func TestFormatRetrievedContext(t *testing.T) {
	if got := FormatRetrievedContext(nil); got != "" {
		t.Errorf("no hits should render empty context, got %q", got)
	}

	rendered := FormatRetrievedContext([]SearchResult{
		{Score: 0.91, Text: "Requires 5+ years of Go."},
		{Score: 0.72, Text: "Team follows trunk-based development."},
	})

	if !strings.Contains(rendered, "Context 1") || !strings.Contains(rendered, "Context 2") {
		t.Errorf("hits should be numbered: %q", rendered)
	}
	if !strings.Contains(rendered, "Requires 5+ years of Go.") {
		t.Errorf("hit text missing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("short input should pass through, got %q", got)
	}
	if got := truncate("exactlyten", 10); got != "exactlyten" {
		t.Errorf("boundary input should pass through, got %q", got)
	}
	if got := truncate("0123456789X", 10); got != "0123456789..." {
		t.Errorf("unexpected truncation %q", got)
	}
}
