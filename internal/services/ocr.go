package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"aiready/resume-ai/internal/logger"
)

// OCREngine recognizes the text in one rasterized page image.
type OCREngine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
	Name() string
}

// OCRService rasterizes every page of a PDF and recognizes each image.
type OCRService interface {
	RecognizePDF(ctx context.Context, pdfPath string) ([]string, error)
}

type ocrService struct {
	pdftoppm string
	dpi      int
	runner   CommandRunner
	engine   OCREngine
	log      *logger.Logger
}

func NewOCRService(pdftoppm string, dpi int, runner CommandRunner, engine OCREngine, log *logger.Logger) OCRService {
	if pdftoppm == "" {
		pdftoppm = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 300
	}
	return &ocrService{
		pdftoppm: pdftoppm,
		dpi:      dpi,
		runner:   runner,
		engine:   engine,
		log:      log.With("service", "ocr", "engine", engine.Name()),
	}
}

// RecognizePDF renders pages next to the PDF (pdftoppm -r <dpi> -png) and
// returns one text block per rendered page, in page order.
func (s *ocrService) RecognizePDF(ctx context.Context, pdfPath string) ([]string, error) {
	pagesDir, err := os.MkdirTemp(filepath.Dir(pdfPath), "pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create page directory: %w", err)
	}
	defer os.RemoveAll(pagesDir)

	prefix := filepath.Join(pagesDir, "page")
	if _, stderr, err := s.runner.Run(ctx, s.pdftoppm, "-r", strconv.Itoa(s.dpi), "-png", pdfPath, prefix); err != nil {
		return nil, fmt.Errorf("rasterize failed: %w: %s", err, strings.TrimSpace(string(stderr)))
	}

	images, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("list rendered pages: %w", err)
	}
	sortPageImages(images)
	if len(images) == 0 {
		return nil, fmt.Errorf("rasterizer produced no images")
	}

	texts := make([]string, 0, len(images))
	for _, img := range images {
		text, err := s.engine.Recognize(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("recognize %s: %w", filepath.Base(img), err)
		}
		texts = append(texts, text)
	}

	s.log.Info("ocr completed", "pdf", filepath.Base(pdfPath), "pages", len(texts))
	return texts, nil
}

// sortPageImages orders page-N.png by N; pdftoppm zero-pads only to the
// width of the largest page number, which differs between tools.
func sortPageImages(paths []string) {
	pageNum := func(p string) int {
		base := strings.TrimSuffix(filepath.Base(p), ".png")
		n, _ := strconv.Atoi(base[strings.LastIndex(base, "-")+1:])
		return n
	}
	sort.Slice(paths, func(i, j int) bool {
		return pageNum(paths[i]) < pageNum(paths[j])
	})
}

type tesseractEngine struct {
	binary string
	lang   string
	runner CommandRunner
}

// NewTesseractEngine runs `tesseract <image> stdout -l <lang>` per page.
func NewTesseractEngine(binary, lang string, runner CommandRunner) OCREngine {
	if binary == "" {
		binary = "tesseract"
	}
	if lang == "" {
		lang = "kor+eng"
	}
	return &tesseractEngine{binary: binary, lang: lang, runner: runner}
}

func (e *tesseractEngine) Name() string {
	return "tesseract"
}

func (e *tesseractEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	out, stderr, err := e.runner.Run(ctx, e.binary, imagePath, "stdout", "-l", e.lang)
	if err != nil {
		return "", fmt.Errorf("%s failed: %w: %s", e.binary, err, strings.TrimSpace(string(stderr)))
	}
	return string(out), nil
}
