package services

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"alfredoptarigan/talent-assessor/internal/config"
	"alfredoptarigan/talent-assessor/internal/models"
)

// maxStrengthBullets caps how many strengths appear in the summary email.
const maxStrengthBullets = 3

// NotificationResult reports delivery outcome without throwing: callers can
// surface a failed notification while the surrounding request still succeeds.
type NotificationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type NotifierService interface {
	NotifyCompletion(assessment *models.Assessment, candidate *models.Candidate, analysis *models.Analysis) NotificationResult
}

// mailSender is satisfied by *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type notifierService struct {
	cfg    config.SMTPConfig
	sender mailSender
}

func NewNotifierService(cfg config.SMTPConfig) NotifierService {
	var sender mailSender
	if cfg.Host != "" {
		sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}

	return &notifierService{
		cfg:    cfg,
		sender: sender,
	}
}

// NotifyCompletion implements NotifierService. With no SMTP host configured it
// short-circuits to a warned no-op so local environments keep working.
func (n *notifierService) NotifyCompletion(assessment *models.Assessment, candidate *models.Candidate, analysis *models.Analysis) NotificationResult {
	if n.sender == nil {
		log.Println("⚠️  SMTP not configured, skipping completion notification")
		return NotificationResult{Success: true}
	}

	recipient := assessment.CreatedBy
	if recipient == "" {
		recipient = n.cfg.NotifyEmail
	}
	if recipient == "" {
		log.Println("⚠️  No notification recipient configured, skipping completion notification")
		return NotificationResult{Success: true}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("Assessment completed: %s — %s", candidate.Name, assessment.JobTitle))
	m.SetBody("text/html", formatCompletionBody(assessment, candidate, analysis))

	if err := n.sender.DialAndSend(m); err != nil {
		log.Printf("❌ Failed to send completion notification: %v\n", err)
		return NotificationResult{Success: false, Error: err.Error()}
	}

	log.Printf("✅ Completion notification sent to %s\n", recipient)
	return NotificationResult{Success: true}
}

func formatCompletionBody(assessment *models.Assessment, candidate *models.Candidate, analysis *models.Analysis) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<h2>%s completed the assessment</h2>", candidate.Name))
	sb.WriteString(fmt.Sprintf("<p>Position: <strong>%s</strong>", assessment.JobTitle))
	if assessment.CompanyContext != "" {
		sb.WriteString(fmt.Sprintf(" at %s", assessment.CompanyContext))
	}
	sb.WriteString("</p>")

	sb.WriteString("<ul>")
	sb.WriteString(fmt.Sprintf("<li>Skill match: %.0f/100</li>", analysis.SkillMatch))
	sb.WriteString(fmt.Sprintf("<li>Communication: %.0f/100</li>", analysis.CommunicationScore))
	sb.WriteString(fmt.Sprintf("<li>Technical: %.0f/100</li>", analysis.TechnicalScore))
	sb.WriteString(fmt.Sprintf("<li>Overall: %.0f/100</li>", analysis.OverallScore))
	sb.WriteString("</ul>")

	sb.WriteString(fmt.Sprintf("<p>Recommendation: <strong>%s</strong></p>", analysis.Recommendation))

	if len(analysis.Strengths) > 0 {
		sb.WriteString("<p>Key strengths:</p><ul>")
		for i, strength := range analysis.Strengths {
			if i >= maxStrengthBullets {
				break
			}
			sb.WriteString(fmt.Sprintf("<li>%s</li>", strength))
		}
		sb.WriteString("</ul>")
	}

	return sb.String()
}
