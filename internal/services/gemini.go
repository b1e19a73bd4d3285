package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"aiready/resume-ai/internal/logger"
)

type geminiBackend struct {
	client      *genai.Client
	modelName   string
	temperature float32
	log         *logger.Logger
}

func NewGeminiBackend(ctx context.Context, apiKey, model string, temperature float32, log *logger.Logger) (LLMBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiBackend{
		client:      client,
		modelName:   model,
		temperature: temperature,
		log:         log,
	}, nil
}

func (g *geminiBackend) Name() string { return "gemini" }

// Generate implements LLMBackend. With a contract the response is constrained
// to its schema; without one the model is only asked for JSON.
func (g *geminiBackend) Generate(ctx context.Context, prompt string, contract *SchemaContract) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  8192,
		ResponseMIMEType: "application/json",
	}
	if contract != nil {
		config.ResponseSchema = toGenaiSchema(contract.Schema)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		reason := ""
		if len(resp.Candidates) > 0 {
			reason = string(resp.Candidates[0].FinishReason)
		}
		g.log.Warn("gemini returned no text", "model", g.modelName, "finish_reason", reason)
		return "", fmt.Errorf("no text content in response")
	}

	g.log.Debug("gemini response received", "model", g.modelName, "chars", len(text))
	return text, nil
}

// toGenaiSchema converts a JSON Schema map into the subset genai accepts.
// additionalProperties has no genai counterpart and is enforced locally.
func toGenaiSchema(m map[string]any) *genai.Schema {
	s := &genai.Schema{}
	switch m["type"] {
	case "object":
		s.Type = genai.TypeObject
	case "array":
		s.Type = genai.TypeArray
	case "integer":
		s.Type = genai.TypeInteger
	case "number":
		s.Type = genai.TypeNumber
	case "boolean":
		s.Type = genai.TypeBoolean
	default:
		s.Type = genai.TypeString
	}
	if d, ok := m["description"].(string); ok {
		s.Description = d
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, p := range props {
			if pm, ok := p.(map[string]any); ok {
				s.Properties[name] = toGenaiSchema(pm)
			}
		}
	}
	if items, ok := m["items"].(map[string]any); ok {
		s.Items = toGenaiSchema(items)
	}
	if req, ok := m["required"].([]string); ok {
		s.Required = append([]string(nil), req...)
		s.PropertyOrdering = append([]string(nil), req...)
	}
	if v, ok := asFloat(m["minimum"]); ok {
		s.Minimum = &v
	}
	if v, ok := asFloat(m["maximum"]); ok {
		s.Maximum = &v
	}
	return s
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
