package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Guidance strings returned instead of errors for resume references the
// extractor cannot work with. Callers feed them to the analysis as degraded
// content.
const (
	GuidanceBlobReference = "The resume was stored as a browser-local reference and cannot be fetched by the server. Please re-upload the resume through the upload endpoint."
	GuidanceLegacyDoc     = "Legacy .doc resumes are not supported. Please convert the resume to PDF or DOCX and upload it again."
	GuidanceNoText        = "No extractable text was found in the resume file. It may be a scanned image; please upload a text-based PDF or DOCX."
)

type ResumeExtractorService interface {
	ExtractText(ctx context.Context, fileReference string) (string, error)
}

type resumeExtractorService struct {
	pdfParser     PDFParserService
	docxParser    DOCXParserService
	geminiService GeminiService
	promptBuilder *PromptBuilder
	httpClient    *http.Client
}

func NewResumeExtractorService(
	pdfParser PDFParserService,
	docxParser DOCXParserService,
	geminiService GeminiService,
) ResumeExtractorService {
	return &resumeExtractorService{
		pdfParser:     pdfParser,
		docxParser:    docxParser,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		httpClient:    &http.Client{Timeout: 60 * time.Second},
	}
}

// ExtractText implements ResumeExtractorService. The file behind fileReference
// is downloaded to a scratch directory, parsed by type, and the raw text is
// normalized into readable sections by the model. Normalization failure falls
// back to the raw text; only download and parse failures are real errors.
func (e *resumeExtractorService) ExtractText(ctx context.Context, fileReference string) (string, error) {
	if !isFetchableURL(fileReference) {
		return GuidanceBlobReference, nil
	}

	tmpDir, err := os.MkdirTemp("", "resume-*")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	ext := referenceExtension(fileReference)
	if ext == ".doc" {
		return GuidanceLegacyDoc, nil
	}

	filePath := filepath.Join(tmpDir, "resume"+ext)
	if err := e.download(ctx, fileReference, filePath); err != nil {
		return "", fmt.Errorf("failed to download resume: %w", err)
	}

	var raw string
	switch ext {
	case ".pdf":
		raw, err = e.pdfParser.ExtractText(filePath)
	case ".docx":
		raw, err = e.docxParser.ExtractText(filePath)
	default:
		return "", fmt.Errorf("unsupported resume file type: %q", ext)
	}

	if err != nil {
		if errors.Is(err, ErrNoTextContent) {
			return GuidanceNoText, nil
		}
		return "", fmt.Errorf("failed to parse resume: %w", err)
	}

	raw = CleanText(raw)
	if raw == "" {
		return GuidanceNoText, nil
	}

	prompt := e.promptBuilder.BuildResumeNormalizationPrompt(raw)
	normalized, err := e.geminiService.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		log.Printf("⚠️  Resume normalization failed, using raw text: %v\n", err)
		return raw, nil
	}

	return strings.TrimSpace(normalized), nil
}

func (e *resumeExtractorService) download(ctx context.Context, fileURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return fmt.Errorf("invalid resume URL: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("failed to write scratch file: %w", err)
	}

	return nil
}

func isFetchableURL(reference string) bool {
	parsed, err := url.Parse(reference)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

func referenceExtension(reference string) string {
	parsed, err := url.Parse(reference)
	if err != nil {
		return strings.ToLower(filepath.Ext(reference))
	}
	return strings.ToLower(filepath.Ext(parsed.Path))
}
