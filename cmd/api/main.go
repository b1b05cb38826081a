package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"alfredoptarigan/resume-builder/internal/config"
	"alfredoptarigan/resume-builder/internal/handlers"
	"alfredoptarigan/resume-builder/internal/repositories"
	"alfredoptarigan/resume-builder/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	sessionRepo := repositories.NewSessionRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Storage backend
	storage, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize storage: %v", err)
	}
	log.Printf("✅ Storage backend '%s' ready\n", cfg.Storage.Backend)

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Optional ATS guideline retrieval
	var guidelines services.GuidelineRetriever
	if cfg.Qdrant.Enabled {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		guidelines = services.NewGuidelineStore(geminiService, qdrantService, cfg.Qdrant.TopK)
		log.Println("✅ Qdrant guideline retrieval enabled")
	}

	// Busy flag: shared through redis when configured
	var lock services.ActionLock
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("❌ Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		lock = services.NewRedisLock(rdb, cfg.Redis.LockTTL)
		log.Println("✅ Redis action lock enabled")
	} else {
		lock = services.NewMemoryLock()
	}

	publisher := services.NewNoopPublisher()
	if cfg.AMQP.URL != "" {
		publisher, err = services.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatalf("❌ Failed to initialize event publisher: %v", err)
		}
	}
	defer publisher.Close()

	extractor := services.NewTextExtractor(geminiService)
	resumeAI := services.NewResumeAIService(geminiService, guidelines, extractor)
	sessions := services.NewSessionService(sessionRepo, cfg.Session.TTL)
	tracker := services.NewActionTracker(lock, publisher)
	archive := services.NewDocumentArchive(docRepo, storage)
	exporter := services.NewExporter(services.NewChromedpRenderer(cfg.Export.ChromePath, cfg.Export.Timeout))
	log.Println("✅ Services initialized successfully")

	// Session janitor
	janitor := services.NewSessionJanitor(sessionRepo, docRepo, storage, cfg.Session.PurgeInterval)
	janitor.Start(ctx)

	app := handlers.NewApp(handlers.AppOptions{
		BodyLimit: int(cfg.Storage.MaxFileSize) * 2,
		AccessLog: true,
	}, handlers.Handlers{
		Session:   handlers.NewSessionHandler(sessions),
		Extract:   handlers.NewExtractHandler(resumeAI, extractor, archive, sessions, tracker, cfg.Storage.MaxFileSize),
		Ats:       handlers.NewAtsHandler(resumeAI, sessions, tracker),
		Portfolio: handlers.NewPortfolioHandler(resumeAI, sessions, tracker),
		Export:    handlers.NewExportHandler(exporter, archive, sessions, tracker),
		Document:  handlers.NewDocumentHandler(archive, sessions),
	})
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		janitor.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newStorage(ctx context.Context, cfg *config.Config) (services.StorageService, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return services.NewS3Storage(ctx, services.S3Options{
			Bucket:    cfg.Storage.S3Bucket,
			Endpoint:  cfg.Storage.S3Endpoint,
			Region:    cfg.Storage.S3Region,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
		})
	case "local", "":
		return services.NewLocalStorage(cfg.Storage.UploadPath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
