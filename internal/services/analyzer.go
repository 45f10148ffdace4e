package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"alfredoptarigan/talent-assessor/internal/models"
	"alfredoptarigan/talent-assessor/internal/repositories"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, candidateID uuid.UUID) (*models.Analysis, error)
}

type analyzerService struct {
	candidateRepo  repositories.CandidateRepository
	assessmentRepo repositories.AssessmentRepository
	responseRepo   repositories.ResponseRepository
	analysisRepo   repositories.AnalysisRepository
	geminiService  GeminiService
	contextStore   ContextStoreService
	extractor      ResumeExtractorService
	promptBuilder  *PromptBuilder
}

func NewAnalyzerService(
	candidateRepo repositories.CandidateRepository,
	assessmentRepo repositories.AssessmentRepository,
	responseRepo repositories.ResponseRepository,
	analysisRepo repositories.AnalysisRepository,
	geminiService GeminiService,
	contextStore ContextStoreService,
	extractor ResumeExtractorService,
) AnalyzerService {
	return &analyzerService{
		candidateRepo:  candidateRepo,
		assessmentRepo: assessmentRepo,
		responseRepo:   responseRepo,
		analysisRepo:   analysisRepo,
		geminiService:  geminiService,
		contextStore:   contextStore,
		extractor:      extractor,
		promptBuilder:  NewPromptBuilder(),
	}
}

// degradedMaxAttempts bounds how often the degraded free-text call is retried
// before the static tier takes over.
const degradedMaxAttempts = 2

// structuredAnalysis is the shape the model is asked to produce in the
// structured tier. JSON tags match the response schema property names.
type structuredAnalysis struct {
	Summary            string   `json:"summary"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	SkillMatch         float64  `json:"skillMatch"`
	CommunicationScore float64  `json:"communicationScore"`
	TechnicalScore     float64  `json:"technicalScore"`
	OverallScore       float64  `json:"overallScore"`
	Recommendation     string   `json:"recommendation"`
	FeedbackPoints     []string `json:"feedbackPoints"`
}

// Analyze implements AnalyzerService. Three tiers of decreasing fidelity are
// attempted in sequence: structured, degraded, static. Every tier persists
// before returning, so the caller always gets a stored analysis unless the
// database write itself fails.
func (a *analyzerService) Analyze(ctx context.Context, candidateID uuid.UUID) (*models.Analysis, error) {
	candidate, err := a.candidateRepo.FindByID(candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	assessment, err := a.assessmentRepo.FindByID(candidate.AssessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	responses, err := a.responseRepo.FindByCandidateID(candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}

	resumeText := a.resolveResumeText(ctx, candidate)
	pairs := buildQuestionAnswers(assessment.Questions, responses)

	// Tier 1: structured
	analysis, structuredErr := a.analyzeStructured(ctx, assessment, resumeText, pairs)
	if structuredErr != nil {
		log.Printf("⚠️  Structured analysis failed for candidate %s, degrading: %v\n", candidateID, structuredErr)

		// Tier 2: degraded free-text
		var degradedErr error
		analysis, degradedErr = a.analyzeDegraded(ctx, assessment, resumeText, pairs)
		if degradedErr != nil {
			log.Printf("⚠️  Degraded analysis also failed for candidate %s, using static result: %v\n", candidateID, degradedErr)

			// Tier 3: static
			analysis = staticAnalysis()
		}
	}

	analysis.CandidateID = candidateID
	applyDerivedScores(analysis)

	if err := a.analysisRepo.Upsert(analysis); err != nil {
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	log.Printf("✅ Analysis stored for candidate %s (tier: %s)\n", candidateID, analysis.Tier)
	return analysis, nil
}

func (a *analyzerService) resolveResumeText(ctx context.Context, candidate *models.Candidate) string {
	if candidate.ResumeURL == "" {
		return ResumePlaceholder
	}

	text, err := a.extractor.ExtractText(ctx, candidate.ResumeURL)
	if err != nil {
		log.Printf("⚠️  Resume extraction failed for candidate %s: %v\n", candidate.ID, err)
		return ResumePlaceholder
	}

	return text
}

func (a *analyzerService) analyzeStructured(ctx context.Context, assessment *models.Assessment, resumeText string, pairs []QuestionAnswer) (*models.Analysis, error) {
	contextText := a.retrieveContext(ctx, assessment)
	prompt := a.promptBuilder.BuildAnalysisPrompt(assessment, resumeText, pairs, contextText)

	var out structuredAnalysis
	if err := a.geminiService.GenerateStructured(ctx, prompt, analysisSchema(), &out); err != nil {
		return nil, err
	}

	if err := validateStructuredAnalysis(&out); err != nil {
		return nil, err
	}

	return &models.Analysis{
		Summary:            strings.TrimSpace(out.Summary),
		Strengths:          out.Strengths,
		Weaknesses:         out.Weaknesses,
		FeedbackPoints:     out.FeedbackPoints,
		SkillMatch:         clampScore(out.SkillMatch),
		CommunicationScore: clampScore(out.CommunicationScore),
		TechnicalScore:     clampScore(out.TechnicalScore),
		OverallScore:       clampScore(out.OverallScore),
		Recommendation:     models.Recommendation(strings.ToUpper(strings.TrimSpace(out.Recommendation))),
		Tier:               models.TierStructured,
	}, nil
}

func (a *analyzerService) analyzeDegraded(ctx context.Context, assessment *models.Assessment, resumeText string, pairs []QuestionAnswer) (*models.Analysis, error) {
	prompt := a.promptBuilder.BuildDegradedAnalysisPrompt(assessment, resumeText, pairs)

	text, err := a.geminiService.GenerateTextWithRetry(ctx, prompt, 0.4, degradedMaxAttempts)
	if err != nil {
		return nil, err
	}

	return &models.Analysis{
		Summary:            "Automated evaluation (reduced fidelity): " + strings.TrimSpace(text),
		Strengths:          []string{"Candidate completed the assessment"},
		Weaknesses:         []string{"Detailed scoring unavailable, manual review recommended"},
		FeedbackPoints:     []string{"The structured evaluation could not be completed; scores are neutral defaults"},
		SkillMatch:         60,
		CommunicationScore: 60,
		TechnicalScore:     60,
		OverallScore:       60,
		Recommendation:     models.RecommendationConsider,
		Tier:               models.TierDegraded,
	}, nil
}

func staticAnalysis() *models.Analysis {
	return &models.Analysis{
		Summary:            "Automated analysis could not be completed due to a technical issue. Please review this candidate manually.",
		Strengths:          []string{"Candidate completed the assessment"},
		Weaknesses:         []string{"Automated evaluation unavailable"},
		FeedbackPoints:     []string{"Re-run the analysis once the evaluation service recovers"},
		SkillMatch:         50,
		CommunicationScore: 50,
		TechnicalScore:     50,
		OverallScore:       50,
		Recommendation:     models.RecommendationConsider,
		Tier:               models.TierStatic,
	}
}

func (a *analyzerService) retrieveContext(ctx context.Context, assessment *models.Assessment) string {
	if a.contextStore == nil {
		return ""
	}

	query := a.promptBuilder.BuildRetrievalQuery(assessment)

	var results []SearchResult
	for _, docType := range JobContextDocTypes {
		hits, err := a.contextStore.RetrieveContext(ctx, query, docType, 2)
		if err != nil {
			log.Printf("⚠️  Warning: failed to retrieve %s context: %v\n", docType, err)
			continue
		}
		results = append(results, hits...)
	}

	return FormatRetrievedContext(results)
}

// buildQuestionAnswers pairs every assessment question with the candidate's
// answer, in question order. Skipped questions are kept with an explicit
// marker so the model sees them.
func buildQuestionAnswers(questions []models.Question, responses []models.Response) []QuestionAnswer {
	byQuestion := make(map[uuid.UUID]*models.Response, len(responses))
	for i := range responses {
		byQuestion[responses[i].QuestionID] = &responses[i]
	}

	pairs := make([]QuestionAnswer, 0, len(questions))
	for i, question := range questions {
		answer := NoResponseMarker

		if response, ok := byQuestion[question.ID]; ok {
			switch {
			case response.Transcription != nil && strings.TrimSpace(*response.Transcription) != "":
				answer = *response.Transcription
			case response.ResponseType == models.QuestionText && strings.TrimSpace(response.Content) != "":
				answer = response.Content
			}
		}

		pairs = append(pairs, QuestionAnswer{
			Number:   i + 1,
			Question: question.Text,
			Type:     question.Type,
			Answer:   answer,
		})
	}

	return pairs
}

// validateStructuredAnalysis rejects responses with missing required fields,
// an unknown recommendation or non-finite scores. Out-of-range scores are not
// rejected here; they are clamped afterwards.
func validateStructuredAnalysis(out *structuredAnalysis) error {
	if strings.TrimSpace(out.Summary) == "" {
		return fmt.Errorf("structured analysis missing summary")
	}

	switch models.Recommendation(strings.ToUpper(strings.TrimSpace(out.Recommendation))) {
	case models.RecommendationStrongHire, models.RecommendationHire,
		models.RecommendationConsider, models.RecommendationReject:
	default:
		return fmt.Errorf("structured analysis has invalid recommendation %q", out.Recommendation)
	}

	for _, score := range []float64{out.SkillMatch, out.CommunicationScore, out.TechnicalScore, out.OverallScore} {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return fmt.Errorf("structured analysis has non-finite score")
		}
	}

	return nil
}

// applyDerivedScores computes the fields that are heuristic, not
// model-derived.
func applyDerivedScores(analysis *models.Analysis) {
	analysis.ExperienceScore = (analysis.TechnicalScore + analysis.CommunicationScore) / 2

	switch analysis.Recommendation {
	case models.RecommendationStrongHire, models.RecommendationHire:
		analysis.IntentToJoin = 85
	default:
		analysis.IntentToJoin = 60
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary":            {Type: genai.TypeString},
			"strengths":          {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"weaknesses":         {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"skillMatch":         {Type: genai.TypeNumber},
			"communicationScore": {Type: genai.TypeNumber},
			"technicalScore":     {Type: genai.TypeNumber},
			"overallScore":       {Type: genai.TypeNumber},
			"recommendation":     {Type: genai.TypeString, Enum: []string{"STRONG_HIRE", "HIRE", "CONSIDER", "REJECT"}},
			"feedbackPoints":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{
			"summary", "strengths", "weaknesses",
			"skillMatch", "communicationScore", "technicalScore", "overallScore",
			"recommendation", "feedbackPoints",
		},
	}
}
