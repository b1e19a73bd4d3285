package services

import (
	"context"
	"fmt"
	"strings"

	"aiready/resume-ai/internal/config"
)

// LLMBackend sends one prompt to a model provider and returns the raw text.
// A nil contract means the provider gets no schema out of band.
type LLMBackend interface {
	Name() string
	Generate(ctx context.Context, prompt string, contract *SchemaContract) (string, error)
}

// CompletionStrategy decides how the contract reaches the model and how the
// returned text is turned into a JSON payload.
type CompletionStrategy interface {
	Name() string
	Complete(ctx context.Context, backend LLMBackend, prompt string, contract *SchemaContract) ([]byte, error)
}

// NewCompletionStrategy returns the strategy registered under name.
func NewCompletionStrategy(name string, prompts *PromptBuilder) (CompletionStrategy, error) {
	switch name {
	case config.StrategyStructured, "":
		return structuredStrategy{}, nil
	case config.StrategyJSONOnly:
		return jsonOnlyStrategy{prompts: prompts}, nil
	default:
		return nil, fmt.Errorf("unknown completion strategy %q", name)
	}
}

// structuredStrategy attaches the schema to the request and trusts the
// provider to return bare JSON.
type structuredStrategy struct{}

func (structuredStrategy) Name() string { return config.StrategyStructured }

func (structuredStrategy) Complete(ctx context.Context, backend LLMBackend, prompt string, contract *SchemaContract) ([]byte, error) {
	text, err := backend.Generate(ctx, prompt, contract)
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(text)), nil
}

// jsonOnlyStrategy renders the schema into the prompt and strips whatever
// the model wraps around the object.
type jsonOnlyStrategy struct {
	prompts *PromptBuilder
}

func (jsonOnlyStrategy) Name() string { return config.StrategyJSONOnly }

func (s jsonOnlyStrategy) Complete(ctx context.Context, backend LLMBackend, prompt string, contract *SchemaContract) ([]byte, error) {
	text, err := backend.Generate(ctx, s.prompts.WithJSONOnlyDirective(prompt, contract), nil)
	if err != nil {
		return nil, err
	}
	return []byte(extractJSON(text)), nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}
	return strings.TrimSpace(text)
}
