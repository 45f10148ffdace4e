package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newExtractorForTest(gemini GeminiService) *resumeExtractorService {
	return &resumeExtractorService{
		pdfParser:     NewPDFParserService(),
		docxParser:    NewDOCXParserService(),
		geminiService: gemini,
		promptBuilder: NewPromptBuilder(),
		httpClient:    &http.Client{Timeout: 5 * time.Second},
	}
}

func docxBytes(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextBlobReferenceReturnsGuidance(t *testing.T) {
	extractor := newExtractorForTest(&fakeGemini{})

	for _, ref := range []string{
		"blob:https://app.example.com/0a1b2c3d",
		"data:application/pdf;base64,AAAA",
		"C:\\Users\\dina\\resume.pdf",
	} {
		text, err := extractor.ExtractText(context.Background(), ref)
		if err != nil {
			t.Errorf("reference %q: expected guidance, got error %v", ref, err)
		}
		if text != GuidanceBlobReference {
			t.Errorf("reference %q: expected blob guidance, got %q", ref, text)
		}
	}
}

func TestExtractTextLegacyDocReturnsGuidance(t *testing.T) {
	extractor := newExtractorForTest(&fakeGemini{})

	text, err := extractor.ExtractText(context.Background(), "https://example.com/uploads/resume.doc")
	if err != nil {
		t.Fatalf("expected guidance, got error %v", err)
	}
	if text != GuidanceLegacyDoc {
		t.Errorf("expected legacy .doc guidance, got %q", text)
	}
}

func TestExtractTextDocxNormalized(t *testing.T) {
	documentXML := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>Dina Safitri, Backend Engineer</w:t></w:r></w:p></w:body></w:document>`
	payload := docxBytes(t, documentXML)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	var capturedPrompt string
	gemini := &fakeGemini{
		textFn: func(prompt string) (string, error) {
			capturedPrompt = prompt
			return "## Summary\nBackend engineer.\n\n## Skills\nGo", nil
		},
	}

	extractor := newExtractorForTest(gemini)

	text, err := extractor.ExtractText(context.Background(), server.URL+"/uploads/resume.docx")
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if !strings.Contains(text, "Backend engineer.") {
		t.Errorf("expected normalized text, got %q", text)
	}
	if !strings.Contains(capturedPrompt, "Dina Safitri, Backend Engineer") {
		t.Errorf("normalization prompt missing the extracted text")
	}
}

func TestExtractTextNormalizationFailureFallsBackToRaw(t *testing.T) {
	documentXML := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>Raw resume line</w:t></w:r></w:p></w:body></w:document>`
	payload := docxBytes(t, documentXML)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	gemini := &fakeGemini{
		textFn: func(prompt string) (string, error) {
			return "", fmt.Errorf("model unavailable")
		},
	}

	extractor := newExtractorForTest(gemini)

	text, err := extractor.ExtractText(context.Background(), server.URL+"/uploads/resume.docx")
	if err != nil {
		t.Fatalf("normalization failure should not be fatal: %v", err)
	}
	if text != "Raw resume line" {
		t.Errorf("expected cleaned raw text fallback, got %q", text)
	}
}

func TestExtractTextEmptyDocxReturnsGuidance(t *testing.T) {
	documentXML := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p></w:p></w:body></w:document>`
	payload := docxBytes(t, documentXML)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	extractor := newExtractorForTest(&fakeGemini{})

	text, err := extractor.ExtractText(context.Background(), server.URL+"/uploads/resume.docx")
	if err != nil {
		t.Fatalf("empty content should yield guidance, got error %v", err)
	}
	if text != GuidanceNoText {
		t.Errorf("expected no-text guidance, got %q", text)
	}
}

func TestExtractTextDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	extractor := newExtractorForTest(&fakeGemini{})

	if _, err := extractor.ExtractText(context.Background(), server.URL+"/uploads/missing.pdf"); err == nil {
		t.Fatal("expected error for unreachable resume")
	}
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	extractor := newExtractorForTest(&fakeGemini{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text"))
	}))
	defer server.Close()

	if _, err := extractor.ExtractText(context.Background(), server.URL+"/uploads/resume.txt"); err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}
