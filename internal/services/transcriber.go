package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"

	"alfredoptarigan/talent-assessor/internal/models"
	"alfredoptarigan/talent-assessor/internal/repositories"
)

// ErrUnsupportedReference marks a media reference the server cannot fetch,
// e.g. a browser-local blob URL. The caller must re-upload through storage.
var ErrUnsupportedReference = errors.New("unsupported media reference")

// TranscriptionError wraps a provider failure with the reference it happened
// on. Retrying is the caller's responsibility.
type TranscriptionError struct {
	Reference string
	Err       error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed for %q: %v", e.Reference, e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// MediaReference points at audio/video content, either by fetchable URL or as
// inline bytes.
type MediaReference struct {
	URL     string
	Content []byte
}

type TranscriberService interface {
	Transcribe(ctx context.Context, ref MediaReference) (string, error)
	TranscribeResponse(ctx context.Context, responseID uuid.UUID) (string, error)
	TranscribeAll(ctx context.Context, responses []models.Response) map[uuid.UUID]error
}

// speechRecognizer is the provider seam; the production implementation calls
// the Speech-to-Text REST API.
type speechRecognizer interface {
	Recognize(ctx context.Context, req *speech.RecognizeRequest) (*speech.RecognizeResponse, error)
}

type googleSpeechRecognizer struct {
	service *speech.Service
}

func (g *googleSpeechRecognizer) Recognize(ctx context.Context, req *speech.RecognizeRequest) (*speech.RecognizeResponse, error) {
	return g.service.Speech.Recognize(req).Context(ctx).Do()
}

type transcriberService struct {
	recognizer   speechRecognizer
	respRepo     repositories.ResponseRepository
	languageCode string
	httpClient   *http.Client
}

func NewTranscriberService(apiKey, languageCode string, respRepo repositories.ResponseRepository) (TranscriberService, error) {
	ctx := context.Background()

	service, err := speech.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	return &transcriberService{
		recognizer:   &googleSpeechRecognizer{service: service},
		respRepo:     respRepo,
		languageCode: languageCode,
		httpClient:   &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Transcribe implements TranscriberService. The recognized segments are joined
// with newlines in provider order; an empty transcript means no speech was
// detected and is a valid outcome.
func (t *transcriberService) Transcribe(ctx context.Context, ref MediaReference) (string, error) {
	payload, err := t.resolvePayload(ctx, ref)
	if err != nil {
		return "", err
	}

	req := &speech.RecognizeRequest{
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(payload),
		},
		Config: &speech.RecognitionConfig{
			LanguageCode:               t.languageCode,
			EnableAutomaticPunctuation: true,
		},
	}

	resp, err := t.recognizer.Recognize(ctx, req)
	if err != nil {
		return "", &TranscriptionError{Reference: ref.URL, Err: err}
	}

	var segments []string
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		segments = append(segments, result.Alternatives[0].Transcript)
	}

	return strings.Join(segments, "\n"), nil
}

// TranscribeResponse implements TranscriberService. Re-invoking it simply
// overwrites the stored transcription, so retries are idempotent.
func (t *transcriberService) TranscribeResponse(ctx context.Context, responseID uuid.UUID) (string, error) {
	response, err := t.respRepo.FindByID(responseID)
	if err != nil {
		return "", fmt.Errorf("failed to load response: %w", err)
	}

	if response.ResponseType == models.QuestionText {
		return "", fmt.Errorf("response %s is a text answer, nothing to transcribe", responseID)
	}

	text, err := t.Transcribe(ctx, MediaReference{URL: response.Content})
	if err != nil {
		return "", err
	}

	if err := t.respRepo.UpdateTranscription(responseID, text); err != nil {
		return "", err
	}

	return text, nil
}

// TranscribeAll implements TranscriberService. Media responses are transcribed
// concurrently; one item's failure never blocks or cancels its siblings. The
// returned map holds per-response errors and is empty when everything
// succeeded.
func (t *transcriberService) TranscribeAll(ctx context.Context, responses []models.Response) map[uuid.UUID]error {
	failures := make(map[uuid.UUID]error)

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, response := range responses {
		if response.ResponseType == models.QuestionText {
			continue
		}

		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if _, err := t.TranscribeResponse(ctx, id); err != nil {
				log.Printf("⚠️  Transcription failed for response %s: %v\n", id, err)
				mu.Lock()
				failures[id] = err
				mu.Unlock()
			}
		}(response.ID)
	}

	wg.Wait()
	return failures
}

func (t *transcriberService) resolvePayload(ctx context.Context, ref MediaReference) ([]byte, error) {
	if len(ref.Content) > 0 {
		return ref.Content, nil
	}

	parsed, err := url.Parse(ref.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q is not server-fetchable, upload the media through storage and retry", ErrUnsupportedReference, ref.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid media URL: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch media: unexpected status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read media body: %w", err)
	}

	return payload, nil
}
