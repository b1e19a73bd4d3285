package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"aiready/resume-ai/internal/config"
	"aiready/resume-ai/internal/handlers"
	"aiready/resume-ai/internal/logger"
	"aiready/resume-ai/internal/services"
)

func main() {
	os.Exit(run())
}

// run returns the exit code instead of exiting so that the deferred OCR
// close and log flush always run.
func run() int {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}
	log.Info("config loaded", "env", cfg.Server.Env, "provider", cfg.AI.Provider, "strategy", cfg.AI.Strategy, "ocr_engine", cfg.OCR.Engine)

	ctx := context.Background()

	processor, closeOCR, err := services.BuildDocumentProcessor(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize document pipeline", "error", err)
		return 1
	}
	defer func() {
		if err := closeOCR(); err != nil {
			log.Warn("failed to close ocr engine", "error", err)
		}
	}()

	aiClient, err := services.BuildAIClient(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize ai client", "error", err)
		return 1
	}
	log.Info("services initialized")

	app := newApp(cfg, processor, aiClient, log)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", "addr", addr)
	if err := app.Listen(addr); err != nil {
		log.Error("failed to start server", "error", err)
		return 1
	}
	return 0
}

func newApp(cfg *config.Config, processor services.DocumentProcessor, aiClient services.AIClient, log *logger.Logger) *fiber.App {
	documentHandler := handlers.NewDocumentHandler(processor, cfg.Server.MaxTextLength)
	aiHandler := handlers.NewAIHandler(aiClient, cfg.Server.MaxTextLength)
	gate := services.NewRateGate(cfg.RateLimit.Interval, cfg.RateLimit.MaxKeys)

	app := fiber.New(fiber.Config{
		AppName:      "Resume AI API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    cfg.BodyLimit(),
		ErrorHandler: handlers.ErrorHandler(log),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", handlers.HandleHealth)

	api := app.Group("/api", handlers.RateLimit(gate))
	api.Post("/document/process", documentHandler.HandleProcess)
	api.Post("/ai/evaluate", aiHandler.HandleEvaluate)
	api.Post("/ai/summarize", aiHandler.HandleSummarize)
	api.Post("/ai/proofread", aiHandler.HandleProofread)

	return app
}
