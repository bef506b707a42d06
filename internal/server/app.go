package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/ratelimit"
)

const requestIDHeader = "X-Request-ID"

type Handlers struct {
	Analyze  *handlers.AnalyzeHandler
	Download *handlers.DownloadHandler
	Result   *handlers.ResultHandler
}

type Options struct {
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Limiter guards the analyze route when set.
	Limiter ratelimit.Limiter
}

func NewApp(h Handlers, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	// request ids are always issued here, never taken from the client
	app.Use(func(c *fiber.Ctx) error {
		c.Request().Header.Del(requestIDHeader)
		return c.Next()
	})
	app.Use(requestid.New(requestid.Config{
		Header:     requestIDHeader,
		Generator:  uuid.NewString,
		ContextKey: handlers.RequestIDKey,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition, X-Request-ID",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "2.0.0",
			"endpoints": []string{
				"POST /analyze-resumes",
				"GET /api/download/:filename",
				"GET /api/v1/analyses/:request_id",
				"GET /api/v1/health",
			},
		})
	})

	analyze := []fiber.Handler{h.Analyze.HandleAnalyze}
	if opts.Limiter != nil {
		analyze = append([]fiber.Handler{ratelimit.New(opts.Limiter)}, analyze...)
	}
	app.Post("/analyze-resumes", analyze...)

	app.Get("/api/download/:filename", h.Download.HandleDownload)

	api := app.Group("/api/v1")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	api.Get("/analyses/:request_id", h.Result.HandleGetResult)

	return app
}
