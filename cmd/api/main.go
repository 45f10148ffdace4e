package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/talent-assessor/internal/config"
	"alfredoptarigan/talent-assessor/internal/handlers"
	"alfredoptarigan/talent-assessor/internal/repositories"
	"alfredoptarigan/talent-assessor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	assessmentRepo := repositories.NewAssessmentRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	responseRepo := repositories.NewResponseRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Server.BaseURL)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	docxParser := services.NewDOCXParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize context store
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
		log.Fatalf("❌ Failed to initialize context collection: %v", err)
	}
	log.Println("✅ Context store initialized successfully")

	// Initialize transcriber
	transcriberService, err := services.NewTranscriberService(
		cfg.Speech.APIKey,
		cfg.Speech.LanguageCode,
		responseRepo,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize transcriber: %v", err)
	}
	log.Println("✅ Transcriber initialized successfully")

	// Initialize domain services
	extractorService := services.NewResumeExtractorService(pdfParser, docxParser, geminiService)
	generatorService := services.NewGeneratorService(geminiService)
	analyzerService := services.NewAnalyzerService(
		candidateRepo,
		assessmentRepo,
		responseRepo,
		analysisRepo,
		geminiService,
		contextStore,
		extractorService,
	)
	notifierService := services.NewNotifierService(cfg.SMTP)
	log.Println("✅ Analyzer service initialized")

	// Initialize worker
	worker := services.NewWorker(
		candidateRepo,
		assessmentRepo,
		responseRepo,
		transcriberService,
		analyzerService,
		notifierService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize)
	assessmentHandler := handlers.NewAssessmentHandler(generatorService, assessmentRepo)
	candidateHandler := handlers.NewCandidateHandler(candidateRepo, assessmentRepo, responseRepo, worker)
	analysisHandler := handlers.NewAnalysisHandler(analyzerService, analysisRepo)
	transcriptionHandler := handlers.NewTranscriptionHandler(transcriberService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Talent Assessor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Uploaded files are served back so the transcriber and resume extractor
	// can fetch them by URL
	app.Static("/uploads", cfg.Storage.UploadPath)

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/assessments/generate", assessmentHandler.HandleGenerate)
	api.Get("/assessments/:id", assessmentHandler.HandleGet)
	api.Post("/assessments/:id/candidates", candidateHandler.HandleRegister)
	api.Post("/candidates/:id/responses", candidateHandler.HandleRecordResponse)
	api.Post("/candidates/:id/submit", candidateHandler.HandleSubmit)
	api.Post("/candidates/:id/analyze", analysisHandler.HandleAnalyze)
	api.Get("/candidates/:id/analysis", analysisHandler.HandleGetAnalysis)
	api.Post("/responses/:id/transcribe", transcriptionHandler.HandleTranscribe)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Talent Assessor API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/assessments/generate",
				"GET /api/v1/assessments/:id",
				"POST /api/v1/assessments/:id/candidates",
				"POST /api/v1/candidates/:id/responses",
				"POST /api/v1/candidates/:id/submit",
				"POST /api/v1/candidates/:id/analyze",
				"GET /api/v1/candidates/:id/analysis",
				"POST /api/v1/responses/:id/transcribe",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
