package handlers

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"aiready/resume-ai/internal/models"
	"aiready/resume-ai/internal/services"
)

type DocumentHandler struct {
	processor     services.DocumentProcessor
	maxTextLength int
}

func NewDocumentHandler(processor services.DocumentProcessor, maxTextLength int) *DocumentHandler {
	return &DocumentHandler{
		processor:     processor,
		maxTextLength: maxTextLength,
	}
}

// HandleProcess handles POST /api/document/process
func (h *DocumentHandler) HandleProcess(c *fiber.Ctx) error {
	var req models.ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, msgInvalidRequest)
	}

	if !isHTTPURL(req.FileURL) {
		return respondError(c, fiber.StatusBadRequest, "fileUrl must be an http(s) URL")
	}
	if !req.FileType.Valid() {
		return respondError(c, fiber.StatusBadRequest, "fileType must be one of: pdf, hwp")
	}
	if !req.DocKind.Valid() {
		return respondError(c, fiber.StatusBadRequest, "docKind must be one of: resume, coverLetter")
	}
	if !req.Language.Valid() {
		return respondError(c, fiber.StatusBadRequest, "language must be one of: ko, en")
	}

	doc, err := h.processor.Process(c.UserContext(), req.FileURL, req.FileType)
	if err != nil {
		return err
	}

	if utf8.RuneCountInString(doc.ExtractedText) > h.maxTextLength {
		return respondError(c, fiber.StatusRequestEntityTooLarge, msgTooLarge)
	}

	return c.JSON(doc)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
