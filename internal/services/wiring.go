package services

import (
	"context"
	"fmt"

	"aiready/resume-ai/internal/config"
	"aiready/resume-ai/internal/logger"
)

// BuildDocumentProcessor assembles the pipeline from configuration. The
// returned close func releases the OCR engine's client, if any.
func BuildDocumentProcessor(ctx context.Context, cfg *config.Config, log *logger.Logger) (DocumentProcessor, func() error, error) {
	runner := NewCommandRunner(log)

	var engine OCREngine
	closeEngine := func() error { return nil }
	switch cfg.OCR.Engine {
	case config.OCREngineVision:
		e, closeFn, err := NewVisionEngine(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("vision ocr: %w", err)
		}
		engine, closeEngine = e, closeFn
	default:
		engine = NewTesseractEngine(cfg.OCR.TesseractBin, cfg.OCR.Lang, runner)
	}
	log.Info("ocr engine selected", "engine", engine.Name())

	processor := NewDocumentProcessor(
		NewWorkspaceService(cfg.Document.TempDir, log),
		NewFormatConverter(cfg.Document.LibreOfficeBin, runner, log),
		NewPDFParserService(),
		NewOCRService(cfg.OCR.PdftoppmBin, cfg.OCR.DPI, runner, engine, log),
		DocumentProcessorConfig{
			DownloadTimeout:    cfg.Document.DownloadTimeout,
			MinTextLength:      cfg.Document.MinTextLength,
			LegacyOCRNormalize: cfg.OCR.LegacyNormalize,
		},
		log,
	)
	return processor, closeEngine, nil
}

// BuildAIClient selects the backend and completion strategy named in cfg.
func BuildAIClient(ctx context.Context, cfg *config.Config, log *logger.Logger) (AIClient, error) {
	log = log.With("service", "ai")

	var backend LLMBackend
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		b, err := NewGeminiBackend(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, cfg.AI.Temperature, log)
		if err != nil {
			return nil, err
		}
		backend = b
	case config.ProviderOpenAI:
		backend = NewOpenAIBackend(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIBaseURL, cfg.AI.OpenAIModel, cfg.AI.Temperature, log)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}

	prompts := NewPromptBuilder()
	strategy, err := NewCompletionStrategy(cfg.AI.Strategy, prompts)
	if err != nil {
		return nil, err
	}
	return NewAIClient(backend, strategy, prompts, log), nil
}
