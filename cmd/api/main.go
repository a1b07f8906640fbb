package main

import (
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

	"github.com/ma593y/seeklyzer/internal/config"
	"github.com/ma593y/seeklyzer/internal/handlers"
	"github.com/ma593y/seeklyzer/internal/repositories"
	"github.com/ma593y/seeklyzer/internal/services"
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

	docRepo := repositories.NewDocumentRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.ExportPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	completionService, err := services.NewCompletionService(cfg.LLM, cfg.Worker)
	if err != nil {
		log.Fatalf("❌ Failed to initialize completion client: %v", err)
	}
	log.Println("✅ Completion client initialized successfully")

	searchService := services.NewSearchService(completionService, cfg.Dataset.Path)
	assessorService := services.NewAssessorService(completionService)
	log.Println("✅ Search and assessor services initialized")

	jobIndexService, err := services.NewJobIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(
		docRepo,
		storageService,
		pdfParser,
		completionService,
		cfg.Storage.MaxFileSize,
	)
	jobsHandler := handlers.NewJobsHandler(
		searchService,
		assessorService,
		pdfParser,
		docRepo,
		completionService,
		jobIndexService,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Seeklyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
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

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Resume workflow: upload > parse > format > save / download
	api.Post("/resume/upload", resumeHandler.HandleUpload)
	api.Post("/resume/parse", resumeHandler.HandleParse)
	api.Post("/resume/format", resumeHandler.HandleFormat)
	api.Post("/resume/extract", resumeHandler.HandleExtract)
	api.Post("/resume/export", resumeHandler.HandleExport)

	// Job finder
	api.Post("/jobs/search", jobsHandler.HandleSearch)
	api.Post("/jobs/similar", jobsHandler.HandleSimilar)
	api.Get("/jobs/:id", jobsHandler.HandleGetJob)
	api.Delete("/jobs/:id", jobsHandler.HandleUnindexJob)
	api.Post("/jobs/:id/assess", jobsHandler.HandleAssess)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Seeklyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resume/upload",
				"POST /api/v1/resume/parse",
				"POST /api/v1/resume/format",
				"POST /api/v1/resume/extract",
				"POST /api/v1/resume/export",
				"POST /api/v1/jobs/search",
				"POST /api/v1/jobs/similar",
				"GET /api/v1/jobs/:id",
				"DELETE /api/v1/jobs/:id",
				"POST /api/v1/jobs/:id/assess",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
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
