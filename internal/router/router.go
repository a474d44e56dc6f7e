package router

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/makeasinger/songsmith/internal/config"
	"github.com/makeasinger/songsmith/internal/handler"
	"github.com/makeasinger/songsmith/internal/playback"
	"github.com/makeasinger/songsmith/internal/service"
	"github.com/makeasinger/songsmith/pkg/response"
)

const bodyLimit = 1 * 1024 * 1024 // 1MB

// Deps are the long-lived components the routes are bound to
type Deps struct {
	Songs    *service.SongService
	Hub      *playback.Hub
	Validate *validator.Validate

	// Session options for /ws/playback, e.g. a shorter beat in tests
	PlaybackOptions []playback.Option
}

// New builds the Fiber app with every route mounted
func New(cfg *config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    bodyLimit,
	})

	// Global middleware
	app.Use(recover.New())
	logFormat := "[${time}] ${status} - ${latency} ${method} ${path}\n"
	if cfg.IsDebug() {
		logFormat = "[${time}] ${status} - ${latency} ${method} ${path} ${queryParams} ${body} ${reqHeaders}\n"
		log.Println("Debug logging enabled")
	}
	app.Use(logger.New(logger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	songHandler := handler.NewSongHandler(deps.Songs, deps.Validate)
	streamer := playback.NewStreamer(deps.Hub, deps.Songs, deps.Validate, deps.PlaybackOptions...)
	playbackHandler := handler.NewPlaybackHandler(streamer)

	// Base URL - timestamp, unless the frontend owns the site root
	if cfg.Server.StaticDir == "" {
		app.Get("/", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"timestamp": time.Now().Unix(),
			})
		})
	}

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":               true,
			"status":           "ok",
			"playbackSessions": deps.Hub.Active(),
		})
	})

	// API routes
	api := app.Group("/api")
	api.Post("/generate", songHandler.Generate)
	api.Get("/generate", songHandler.GenerateQuery)
	api.Post("/arrangement", songHandler.Arrangement)
	api.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})

	// WebSocket routes
	app.Use("/ws", playbackHandler.Upgrade)
	app.Get("/ws/playback", playbackHandler.Stream())

	// Frontend
	if cfg.Server.StaticDir != "" {
		app.Static("/", cfg.Server.StaticDir, fiber.Static{
			Index: "index.html",
		})
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(cfg.Server.StaticDir + "/index.html")
		})
	}

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "SERVICE_ERROR",
			"message": message,
		},
	})
}
