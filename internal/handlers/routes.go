package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Handlers struct {
	Session   *SessionHandler
	Extract   *ExtractHandler
	Ats       *AtsHandler
	Portfolio *PortfolioHandler
	Export    *ExportHandler
	Document  *DocumentHandler
}

type AppOptions struct {
	BodyLimit int
	// AccessLog toggles the request logger middleware.
	AccessLog bool
}

var endpoints = []string{
	"POST /api/v1/sessions",
	"GET /api/v1/sessions/:id",
	"PUT /api/v1/sessions/:id/resume",
	"POST /api/v1/resumes/validate",
	"POST /api/v1/extract/text",
	"POST /api/v1/extract/upload",
	"POST /api/v1/documents/text",
	"POST /api/v1/ats/score",
	"POST /api/v1/ats/feedback",
	"POST /api/v1/portfolio/resume",
	"POST /api/v1/portfolio/text",
	"POST /api/v1/export",
	"GET /api/v1/sessions/:id/documents",
	"GET /api/v1/sessions/:id/documents/:docId",
}

func NewApp(opts AppOptions, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Resume Builder API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/sessions", h.Session.HandleCreate)
	api.Get("/sessions/:id", h.Session.HandleGet)
	api.Put("/sessions/:id/resume", h.Session.HandlePutResume)
	api.Post("/resumes/validate", h.Session.HandleValidateResume)

	api.Post("/extract/text", h.Extract.HandleExtractText)
	api.Post("/extract/upload", h.Extract.HandleUpload)
	api.Post("/documents/text", h.Extract.HandleDocumentText)

	api.Post("/ats/score", h.Ats.HandleScore)
	api.Post("/ats/feedback", h.Ats.HandleFeedback)

	api.Post("/portfolio/resume", h.Portfolio.HandleResume)
	api.Post("/portfolio/text", h.Portfolio.HandleText)

	api.Post("/export", h.Export.HandleExport)

	api.Get("/sessions/:id/documents", h.Document.HandleList)
	api.Get("/sessions/:id/documents/:docId", h.Document.HandleDownload)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Resume Builder API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})

	return app
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
