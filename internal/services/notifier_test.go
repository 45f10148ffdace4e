package services

import (
	"fmt"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"

	"alfredoptarigan/talent-assessor/internal/config"
	"alfredoptarigan/talent-assessor/internal/models"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func notifierFixture() (*models.Assessment, *models.Candidate, *models.Analysis) {
	assessment := &models.Assessment{
		JobTitle:       "Backend Engineer",
		CompanyContext: "Acme Corp",
		CreatedBy:      "recruiter@acme.example",
	}
	candidate := &models.Candidate{Name: "Dina Safitri"}
	analysis := &models.Analysis{
		SkillMatch:         82,
		CommunicationScore: 75,
		TechnicalScore:     88,
		OverallScore:       84,
		Recommendation:     models.RecommendationHire,
		Strengths:          []string{"System design", "Go depth", "Clear communication", "Mentoring"},
	}
	return assessment, candidate, analysis
}

func TestNotifyCompletionUnconfiguredIsNoOp(t *testing.T) {
	notifier := NewNotifierService(config.SMTPConfig{})

	assessment, candidate, analysis := notifierFixture()
	result := notifier.NotifyCompletion(assessment, candidate, analysis)

	if !result.Success {
		t.Errorf("unconfigured notifier should report success, got %+v", result)
	}
}

func TestNotifyCompletionSendsToAssessmentOwner(t *testing.T) {
	sender := &fakeSender{}
	notifier := &notifierService{
		cfg:    config.SMTPConfig{Host: "smtp.example.com", From: "noreply@acme.example", NotifyEmail: "fallback@acme.example"},
		sender: sender,
	}

	assessment, candidate, analysis := notifierFixture()
	result := notifier.NotifyCompletion(assessment, candidate, analysis)

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.sent))
	}

	to := sender.sent[0].GetHeader("To")
	if len(to) != 1 || to[0] != "recruiter@acme.example" {
		t.Errorf("expected message addressed to the assessment owner, got %v", to)
	}
}

func TestNotifyCompletionFallsBackToConfiguredRecipient(t *testing.T) {
	sender := &fakeSender{}
	notifier := &notifierService{
		cfg:    config.SMTPConfig{Host: "smtp.example.com", From: "noreply@acme.example", NotifyEmail: "fallback@acme.example"},
		sender: sender,
	}

	assessment, candidate, analysis := notifierFixture()
	assessment.CreatedBy = ""

	if result := notifier.NotifyCompletion(assessment, candidate, analysis); !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	to := sender.sent[0].GetHeader("To")
	if len(to) != 1 || to[0] != "fallback@acme.example" {
		t.Errorf("expected fallback recipient, got %v", to)
	}
}

func TestNotifyCompletionReportsDeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: fmt.Errorf("connection refused")}
	notifier := &notifierService{
		cfg:    config.SMTPConfig{Host: "smtp.example.com", From: "noreply@acme.example"},
		sender: sender,
	}

	assessment, candidate, analysis := notifierFixture()
	result := notifier.NotifyCompletion(assessment, candidate, analysis)

	if result.Success {
		t.Error("expected failure result")
	}
	if !strings.Contains(result.Error, "connection refused") {
		t.Errorf("expected delivery error surfaced, got %q", result.Error)
	}
}

func TestFormatCompletionBody(t *testing.T) {
	assessment, candidate, analysis := notifierFixture()

	body := formatCompletionBody(assessment, candidate, analysis)

	for _, fragment := range []string{
		"Dina Safitri",
		"Backend Engineer",
		"Acme Corp",
		"82/100",
		"HIRE",
		"System design",
	} {
		if !strings.Contains(body, fragment) {
			t.Errorf("body missing %q", fragment)
		}
	}

	// Only the first three strengths are listed.
	if strings.Contains(body, "Mentoring") {
		t.Errorf("body should cap strengths at %d bullets", maxStrengthBullets)
	}
}
