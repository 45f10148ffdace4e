package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/talent-assessor/internal/models"
)

// NoResponseMarker is rendered in place of an answer the candidate skipped so
// the model knows the question went unanswered.
const NoResponseMarker = "[No response provided]"

// ResumePlaceholder stands in when the candidate supplied no resume.
const ResumePlaceholder = "No resume was provided for this candidate."

type QuestionAnswer struct {
	Number   int
	Question string
	Type     models.QuestionType
	Answer   string
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAssessmentPrompt creates the prompt for assessment generation.
func (pb *PromptBuilder) BuildAssessmentPrompt(req models.AssessmentRequest) string {
	assessmentType := req.AssessmentType
	if assessmentType == "" {
		assessmentType = string(models.AssessmentMixed)
	}

	var sb strings.Builder
	sb.WriteString("You are an expert HR recruiter designing a candidate assessment.\n\n")
	sb.WriteString(fmt.Sprintf("Position: %s\n", req.JobTitle))
	sb.WriteString(fmt.Sprintf("Experience level: %s\n", req.ExperienceLevel))
	sb.WriteString(fmt.Sprintf("Required skills: %s\n", strings.Join(req.RequiredSkills, ", ")))
	if req.CompanyContext != "" {
		sb.WriteString(fmt.Sprintf("Company context: %s\n", req.CompanyContext))
	}
	sb.WriteString(fmt.Sprintf("Assessment type: %s\n", assessmentType))
	if req.NumberOfQuestions > 0 {
		sb.WriteString(fmt.Sprintf("Number of questions: exactly %d\n", req.NumberOfQuestions))
	}
	if req.Duration > 0 {
		sb.WriteString(fmt.Sprintf("Target duration: %d minutes\n", req.Duration))
	}

	sb.WriteString(`
Create an assessment for this position. Rules:
- Questions must cover the required skills listed above.
- Each question has a type (VIDEO, AUDIO or TEXT), a difficulty (EASY, MEDIUM or HARD) and the skill it probes.
- VIDEO and AUDIO questions should suit spoken answers; TEXT questions suit written or code answers.
- Order questions from easier to harder.
- The passing score is a percentage between 0 and 100.`)

	return sb.String()
}

// BuildAnalysisPrompt creates the full-fidelity prompt for candidate analysis.
// Every question appears exactly once, answered or not.
func (pb *PromptBuilder) BuildAnalysisPrompt(assessment *models.Assessment, resumeText string, pairs []QuestionAnswer, contextText string) string {
	if strings.TrimSpace(resumeText) == "" {
		resumeText = ResumePlaceholder
	}

	var sb strings.Builder
	sb.WriteString("You are an expert HR recruiter evaluating a candidate who completed an assessment.\n\n")
	sb.WriteString(fmt.Sprintf("POSITION: %s (%s)\n", assessment.JobTitle, assessment.ExperienceLevel))
	sb.WriteString(fmt.Sprintf("REQUIRED SKILLS: %s\n", strings.Join(assessment.RequiredSkills, ", ")))
	if assessment.Description != "" {
		sb.WriteString(fmt.Sprintf("ASSESSMENT DESCRIPTION: %s\n", assessment.Description))
	}

	if strings.TrimSpace(contextText) != "" {
		sb.WriteString("\nADDITIONAL JOB CONTEXT:\n")
		sb.WriteString(contextText)
		sb.WriteString("\n")
	}

	sb.WriteString("\nCANDIDATE RESUME:\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\nQUESTIONS AND RESPONSES:\n")
	for _, pair := range pairs {
		sb.WriteString(fmt.Sprintf("\nQ%d (%s): %s\nAnswer: %s\n", pair.Number, pair.Type, pair.Question, pair.Answer))
	}

	sb.WriteString(`
Evaluate the candidate against the position. Score skillMatch, communicationScore, technicalScore and overallScore on a 0-100 scale. Unanswered questions should count against completeness. Summarize strengths, weaknesses and concrete feedback points, then give a recommendation: STRONG_HIRE, HIRE, CONSIDER or REJECT.`)

	return sb.String()
}

// BuildDegradedAnalysisPrompt is the shorter free-text prompt used when the
// structured call has failed. Resume and answers are truncated to keep the
// request small.
func (pb *PromptBuilder) BuildDegradedAnalysisPrompt(assessment *models.Assessment, resumeText string, pairs []QuestionAnswer) string {
	if strings.TrimSpace(resumeText) == "" {
		resumeText = ResumePlaceholder
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Briefly evaluate a candidate for the %s position.\n", assessment.JobTitle))
	sb.WriteString(fmt.Sprintf("Resume excerpt: %s\n", truncate(resumeText, 1500)))
	sb.WriteString("Responses:\n")
	for _, pair := range pairs {
		sb.WriteString(fmt.Sprintf("Q%d: %s -> %s\n", pair.Number, truncate(pair.Question, 200), truncate(pair.Answer, 300)))
	}
	sb.WriteString("\nWrite 3-5 sentences on the candidate's fit. Plain text only.")

	return sb.String()
}

// BuildResumeNormalizationPrompt asks the model to reorganize raw extracted
// resume text into readable sections.
func (pb *PromptBuilder) BuildResumeNormalizationPrompt(rawText string) string {
	return fmt.Sprintf(`The following text was extracted from a resume file and may have broken layout, repeated headers or jumbled ordering.

Reorganize it into clean, readable sections (Summary, Experience, Education, Skills) without inventing any information. Return only the reorganized text.

RAW RESUME TEXT:
%s`, rawText)
}

// BuildRetrievalQuery creates the query text for job-context retrieval.
func (pb *PromptBuilder) BuildRetrievalQuery(assessment *models.Assessment) string {
	return fmt.Sprintf("Requirements, qualifications and evaluation criteria for %s (%s)",
		assessment.JobTitle, assessment.ExperienceLevel)
}

// FormatRetrievedContext renders retrieval hits for prompt inclusion.
func FormatRetrievedContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
