package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/makeasinger/songsmith/internal/config"
	"github.com/makeasinger/songsmith/internal/playback"
	"github.com/makeasinger/songsmith/internal/router"
	"github.com/makeasinger/songsmith/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize validator
	validate := validator.New()

	// Initialize playback hub
	hub := playback.NewHub()
	go hub.Run()

	// Initialize services
	songService := service.NewSongService(service.Options{
		DefaultCount: cfg.Generator.DefaultCount,
		MaxCount:     cfg.Generator.MaxCount,
		RetryFactor:  cfg.Generator.RetryFactor,
		DefaultBPM:   cfg.Playback.DefaultBPM,
	})

	app := router.New(cfg, router.Deps{
		Songs:    songService,
		Hub:      hub,
		Validate: validate,
	})

	if cfg.Server.StaticDir != "" {
		log.Printf("Serving frontend from %s", cfg.Server.StaticDir)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		hub.Close()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s (%s)", addr, cfg.Server.Env)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
