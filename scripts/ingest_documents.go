package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/talent-assessor/internal/config"
	"alfredoptarigan/talent-assessor/internal/services"
)

func main() {
	log.Println("🚀 Starting job-context ingestion...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	contextStore, err := services.NewContextStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize context store: %v", err)
	}

	if err := contextStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	docxParser := services.NewDOCXParserService()

	ctx := context.Background()

	documents := []struct {
		Path    string
		DocType string
		Name    string
	}{
		{
			Path:    "./reference_docs/job_description.pdf",
			DocType: services.DocTypeJobDescription,
			Name:    "Job Description",
		},
		{
			Path:    "./reference_docs/scoring_rubric.pdf",
			DocType: services.DocTypeScoringRubric,
			Name:    "Interview Scoring Rubric",
		},
		{
			Path:    "./reference_docs/company_profile.pdf",
			DocType: services.DocTypeCompanyProfile,
			Name:    "Company Profile",
		},
		{
			Path:    "./reference_docs/interview_guidelines.docx",
			DocType: services.DocTypeInterviewGuidelines,
			Name:    "Interview Guidelines",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Name)
		log.Printf("   Path: %s", doc.Path)
		log.Printf("   Type: %s", doc.DocType)

		// Check if file exists
		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		// Extract text based on extension
		log.Printf("   📖 Extracting text...")
		var text string
		var extractErr error

		switch strings.ToLower(filepath.Ext(doc.Path)) {
		case ".pdf":
			text, extractErr = pdfParser.ExtractText(doc.Path)
		case ".docx":
			text, extractErr = docxParser.ExtractText(doc.Path)
		default:
			log.Printf("   ⚠️  Unsupported file type, skipping...")
			failCount++
			continue
		}

		if extractErr != nil {
			log.Printf("   ❌ Failed to extract text: %v", extractErr)
			failCount++
			continue
		}

		text = services.CleanText(text)
		log.Printf("   ✅ Extracted %d characters", len(text))

		// Chunk, embed and store
		log.Printf("   🔄 Embedding and storing chunks...")
		if err := contextStore.IngestDocument(ctx, doc.DocType, doc.DocType, text); err != nil {
			log.Printf("   ❌ Failed to ingest: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Successfully ingested %s", doc.Name)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
