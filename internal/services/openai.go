package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"aiready/resume-ai/internal/logger"
)

type openAIBackend struct {
	client      openai.Client
	model       string
	temperature float32
	log         *logger.Logger
}

func NewOpenAIBackend(apiKey, baseURL, model string, temperature float32, log *logger.Logger) LLMBackend {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAIBackend{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
		log:         log,
	}
}

func (o *openAIBackend) Name() string { return "openai" }

// Generate implements LLMBackend using the Responses API. A contract is sent
// as a json_schema text format.
func (o *openAIBackend) Generate(ctx context.Context, prompt string, contract *SchemaContract) (string, error) {
	params := responses.ResponseNewParams{
		Model:       o.model,
		Input:       responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt)},
		Temperature: openai.Float(float64(o.temperature)),
	}
	if contract != nil {
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigParamOfJSONSchema(contract.Name, contract.Schema),
		}
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	text := resp.OutputText()
	if text == "" {
		o.log.Warn("openai returned no text", "model", o.model, "status", resp.Status)
		return "", fmt.Errorf("no text content in response")
	}
	o.log.Debug("openai response received", "model", o.model, "chars", len(text))
	return text, nil
}
