package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"aiready/resume-ai/internal/models"
	"aiready/resume-ai/internal/services"
)

type AIHandler struct {
	client        services.AIClient
	maxTextLength int
}

func NewAIHandler(client services.AIClient, maxTextLength int) *AIHandler {
	return &AIHandler{
		client:        client,
		maxTextLength: maxTextLength,
	}
}

// HandleEvaluate handles POST /api/ai/evaluate
func (h *AIHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, msgInvalidRequest)
	}
	if !req.DocKind.Valid() {
		return respondError(c, fiber.StatusBadRequest, "docKind must be one of: resume, coverLetter")
	}
	if status, detail, ok := h.checkText(req.ExtractedText, req.Language); !ok {
		return respondError(c, status, detail)
	}

	resp, err := h.client.Evaluate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// HandleSummarize handles POST /api/ai/summarize
func (h *AIHandler) HandleSummarize(c *fiber.Ctx) error {
	var req models.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, msgInvalidRequest)
	}
	if status, detail, ok := h.checkText(req.ExtractedText, req.Language); !ok {
		return respondError(c, status, detail)
	}

	resp, err := h.client.Summarize(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// HandleProofread handles POST /api/ai/proofread
func (h *AIHandler) HandleProofread(c *fiber.Ctx) error {
	var req models.ProofreadRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, msgInvalidRequest)
	}
	if status, detail, ok := h.checkText(req.ExtractedText, req.Language); !ok {
		return respondError(c, status, detail)
	}

	resp, err := h.client.Proofread(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *AIHandler) checkText(text string, lang models.Language) (int, string, bool) {
	if strings.TrimSpace(text) == "" {
		return fiber.StatusBadRequest, "extractedText is required", false
	}
	if !lang.Valid() {
		return fiber.StatusBadRequest, "language must be one of: ko, en", false
	}
	if utf8.RuneCountInString(text) > h.maxTextLength {
		return fiber.StatusRequestEntityTooLarge, msgTooLarge, false
	}
	return 0, "", true
}
