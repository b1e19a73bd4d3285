package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aiready/resume-ai/internal/logger"
)

// FormatConverter turns a word-processor document into a PDF next to it.
type FormatConverter interface {
	ConvertToPDF(ctx context.Context, sourcePath string) (string, error)
}

type libreOfficeConverter struct {
	binary string
	runner CommandRunner
	log    *logger.Logger
}

func NewFormatConverter(binary string, runner CommandRunner, log *logger.Logger) FormatConverter {
	if binary == "" {
		binary = "libreoffice"
	}
	return &libreOfficeConverter{
		binary: binary,
		runner: runner,
		log:    log.With("service", "converter"),
	}
}

// ConvertToPDF runs `<binary> --headless --convert-to pdf <src> --outdir <dir>`.
// Success requires exit code 0 and <dir>/<stem>.pdf to exist afterwards.
func (c *libreOfficeConverter) ConvertToPDF(ctx context.Context, sourcePath string) (string, error) {
	outputDir := filepath.Dir(sourcePath)

	_, stderr, err := c.runner.Run(ctx, c.binary,
		"--headless",
		"--convert-to", "pdf",
		sourcePath,
		"--outdir", outputDir,
	)
	if err != nil {
		return "", newServiceError(KindConversionFailed,
			fmt.Errorf("%s failed: %w: %s", c.binary, err, strings.TrimSpace(string(stderr))))
	}

	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	pdfPath := filepath.Join(outputDir, stem+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", newServiceError(KindConversionFailed,
			fmt.Errorf("converted PDF not found at %s: %w", pdfPath, err))
	}

	c.log.Debug("converted document", "source", sourcePath, "pdf", pdfPath)
	return pdfPath, nil
}
