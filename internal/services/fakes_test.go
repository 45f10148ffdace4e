package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"alfredoptarigan/talent-assessor/internal/models"
)

// fakeGemini lets each test script the model's behavior per call.
type fakeGemini struct {
	structuredFn func(prompt string, target interface{}) error
	textFn       func(prompt string) (string, error)
	embedFn      func(text string) ([]float32, error)
}

func (f *fakeGemini) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema, target interface{}) error {
	if f.structuredFn == nil {
		return fmt.Errorf("structured generation unavailable")
	}
	return f.structuredFn(prompt, target)
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	if f.textFn == nil {
		return "", fmt.Errorf("text generation unavailable")
	}
	return f.textFn(prompt)
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedFn == nil {
		return []float32{0.1, 0.2, 0.3}, nil
	}
	return f.embedFn(text)
}

type fakeCandidateRepo struct {
	candidates   map[uuid.UUID]*models.Candidate
	statuses     map[uuid.UUID]models.CandidateStatus
	failOnStatus models.CandidateStatus
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{
		candidates: make(map[uuid.UUID]*models.Candidate),
		statuses:   make(map[uuid.UUID]models.CandidateStatus),
	}
}

func (f *fakeCandidateRepo) Create(candidate *models.Candidate) error {
	f.candidates[candidate.ID] = candidate
	return nil
}

func (f *fakeCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	candidate, ok := f.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate not found")
	}
	return candidate, nil
}

func (f *fakeCandidateRepo) UpdateStatus(id uuid.UUID, status models.CandidateStatus) error {
	if f.failOnStatus != "" && status == f.failOnStatus {
		return fmt.Errorf("status update failed")
	}
	if _, ok := f.candidates[id]; !ok {
		return fmt.Errorf("candidate not found")
	}
	f.statuses[id] = status
	f.candidates[id].Status = status
	return nil
}

func (f *fakeCandidateRepo) ClaimForAnalysis(id uuid.UUID) (bool, error) {
	candidate, ok := f.candidates[id]
	if !ok {
		return false, fmt.Errorf("candidate not found")
	}
	if candidate.Status != models.CandidateSubmitted {
		return false, nil
	}
	candidate.Status = models.CandidateAnalyzing
	f.statuses[id] = models.CandidateAnalyzing
	return true, nil
}

func (f *fakeCandidateRepo) FindSubmitted(limit int) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, candidate := range f.candidates {
		if candidate.Status == models.CandidateSubmitted {
			out = append(out, *candidate)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakeAssessmentRepo struct {
	assessments map[uuid.UUID]*models.Assessment
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{assessments: make(map[uuid.UUID]*models.Assessment)}
}

func (f *fakeAssessmentRepo) Create(assessment *models.Assessment) error {
	f.assessments[assessment.ID] = assessment
	return nil
}

func (f *fakeAssessmentRepo) FindByID(id uuid.UUID) (*models.Assessment, error) {
	assessment, ok := f.assessments[id]
	if !ok {
		return nil, fmt.Errorf("assessment not found")
	}
	return assessment, nil
}

type fakeResponseRepo struct {
	responses      map[uuid.UUID]*models.Response
	transcriptions map[uuid.UUID]string
	updateErr      error
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{
		responses:      make(map[uuid.UUID]*models.Response),
		transcriptions: make(map[uuid.UUID]string),
	}
}

func (f *fakeResponseRepo) Upsert(response *models.Response) error {
	f.responses[response.ID] = response
	return nil
}

func (f *fakeResponseRepo) FindByID(id uuid.UUID) (*models.Response, error) {
	response, ok := f.responses[id]
	if !ok {
		return nil, fmt.Errorf("response not found")
	}
	return response, nil
}

func (f *fakeResponseRepo) FindByCandidateID(candidateID uuid.UUID) ([]models.Response, error) {
	var out []models.Response
	for _, response := range f.responses {
		if response.CandidateID == candidateID {
			out = append(out, *response)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) UpdateTranscription(id uuid.UUID, transcription string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.responses[id]; !ok {
		return fmt.Errorf("response not found")
	}
	f.transcriptions[id] = transcription
	f.responses[id].Transcription = &transcription
	return nil
}

type fakeAnalysisRepo struct {
	byCandidate map[uuid.UUID]*models.Analysis
	upsertCount int
	creates     int
	updates     int
	upsertErr   error
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{byCandidate: make(map[uuid.UUID]*models.Analysis)}
}

func (f *fakeAnalysisRepo) Upsert(analysis *models.Analysis) error {
	f.upsertCount++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if _, ok := f.byCandidate[analysis.CandidateID]; ok {
		f.updates++
	} else {
		f.creates++
	}
	f.byCandidate[analysis.CandidateID] = analysis
	return nil
}

func (f *fakeAnalysisRepo) FindByCandidateID(candidateID uuid.UUID) (*models.Analysis, error) {
	analysis, ok := f.byCandidate[candidateID]
	if !ok {
		return nil, fmt.Errorf("analysis not found")
	}
	return analysis, nil
}

type fakeContextStore struct {
	byType    map[string][]SearchResult
	requested []string
	err       error
}

func (f *fakeContextStore) InitCollection() error { return nil }

func (f *fakeContextStore) IngestDocument(ctx context.Context, docID string, docType string, text string) error {
	return nil
}

func (f *fakeContextStore) RetrieveContext(ctx context.Context, query string, docType string, limit int) ([]SearchResult, error) {
	f.requested = append(f.requested, docType)
	if f.err != nil {
		return nil, f.err
	}
	return f.byType[docType], nil
}

func (f *fakeContextStore) DeleteDocument(ctx context.Context, docID string) error { return nil }

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(ctx context.Context, fileReference string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
