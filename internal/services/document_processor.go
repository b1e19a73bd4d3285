package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"aiready/resume-ai/internal/logger"
	"aiready/resume-ai/internal/models"
)

type DocumentProcessor interface {
	Process(ctx context.Context, url string, fileType models.FileType) (*models.ProcessedDocument, error)
}

type DocumentProcessorConfig struct {
	DownloadTimeout time.Duration
	MinTextLength   int
	// LegacyOCRNormalize skips header/footer stripping on OCR output.
	LegacyOCRNormalize bool
}

type documentProcessor struct {
	httpClient *http.Client
	workspaces WorkspaceService
	converter  FormatConverter
	parser     PDFParserService
	ocr        OCRService
	cfg        DocumentProcessorConfig
	log        *logger.Logger
}

func NewDocumentProcessor(
	workspaces WorkspaceService,
	converter FormatConverter,
	parser PDFParserService,
	ocr OCRService,
	cfg DocumentProcessorConfig,
	log *logger.Logger,
) DocumentProcessor {
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = 60 * time.Second
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = 300
	}
	return &documentProcessor{
		httpClient: &http.Client{Timeout: cfg.DownloadTimeout},
		workspaces: workspaces,
		converter:  converter,
		parser:     parser,
		ocr:        ocr,
		cfg:        cfg,
		log:        log.With("service", "document"),
	}
}

// Process downloads, converts, extracts and normalizes one document. The run
// ignores caller cancellation once started, and its workspace is removed on
// every exit path.
func (p *documentProcessor) Process(ctx context.Context, url string, fileType models.FileType) (*models.ProcessedDocument, error) {
	ctx = context.WithoutCancel(ctx)
	log := p.log.With("req_id", uuid.New().String(), "file_type", fileType)
	start := time.Now()

	ws, err := p.workspaces.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare workspace: %w", err)
	}
	defer ws.Cleanup()

	sourcePath, err := p.download(ctx, ws, url, fileType)
	if err != nil {
		log.Warn("download failed", "error", err)
		return nil, err
	}

	pdfPath := sourcePath
	if fileType == models.FileTypeHWP {
		pdfPath, err = p.converter.ConvertToPDF(ctx, sourcePath)
		if err != nil {
			log.Error("conversion failed", "error", err)
			return nil, err
		}
	}

	extracted, err := p.parser.ExtractPages(pdfPath)
	if err != nil {
		log.Error("text extraction failed", "error", err)
		return nil, newServiceError(KindExtractionFailed, err)
	}

	text := normalizeBlocks(extracted.Pages, true)
	source := "text_layer"

	if utf8.RuneCountInString(text) < p.cfg.MinTextLength && extracted.PageCount > 0 {
		log.Info("text layer too sparse, falling back to ocr",
			"chars", utf8.RuneCountInString(text),
			"threshold", p.cfg.MinTextLength,
		)
		blocks, err := p.ocr.RecognizePDF(ctx, pdfPath)
		if err != nil {
			log.Error("ocr failed", "error", err)
			return nil, newServiceError(KindExtractionFailed, err)
		}
		text = normalizeBlocks(blocks, !p.cfg.LegacyOCRNormalize)
		source = "ocr"
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn("no text extracted", "pages", extracted.PageCount, "source", source)
		return nil, newServiceError(KindExtractionEmpty, nil)
	}

	log.Info("document processed",
		"pages", extracted.PageCount,
		"chars", utf8.RuneCountInString(text),
		"source", source,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return &models.ProcessedDocument{
		ExtractedText: text,
		PageCount:     extracted.PageCount,
		PDFURL:        nil,
	}, nil
}

func (p *documentProcessor) download(ctx context.Context, ws *Workspace, url string, fileType models.FileType) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", newServiceError(KindDownloadFailed, fmt.Errorf("build request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", newServiceError(KindDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", newServiceError(KindDownloadFailed, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	path, err := ws.SaveFile("source."+string(fileType), resp.Body)
	if err != nil {
		return "", newServiceError(KindDownloadFailed, err)
	}
	return path, nil
}
