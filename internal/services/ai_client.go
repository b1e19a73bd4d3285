package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"aiready/resume-ai/internal/logger"
	"aiready/resume-ai/internal/models"
)

// AIClient runs one schema-constrained model call per task. A response that
// is not valid JSON or breaks the task's contract is never returned.
type AIClient interface {
	Evaluate(ctx context.Context, req models.EvaluateRequest) (*models.EvaluateResponse, error)
	Summarize(ctx context.Context, req models.SummarizeRequest) (*models.SummarizeResponse, error)
	Proofread(ctx context.Context, req models.ProofreadRequest) (*models.ProofreadResponse, error)
}

type aiClient struct {
	backend  LLMBackend
	strategy CompletionStrategy
	prompts  *PromptBuilder
	log      *logger.Logger
}

func NewAIClient(backend LLMBackend, strategy CompletionStrategy, prompts *PromptBuilder, log *logger.Logger) AIClient {
	return &aiClient{
		backend:  backend,
		strategy: strategy,
		prompts:  prompts,
		log:      log,
	}
}

func (a *aiClient) Evaluate(ctx context.Context, req models.EvaluateRequest) (*models.EvaluateResponse, error) {
	env := PromptEnvelope{
		Task:       TaskEvaluate,
		Language:   req.Language,
		DocKind:    req.DocKind,
		TargetRole: deref(req.TargetRole),
		Text:       req.ExtractedText,
	}
	return complete[models.EvaluateResponse](ctx, a, env, EvaluationContract)
}

func (a *aiClient) Summarize(ctx context.Context, req models.SummarizeRequest) (*models.SummarizeResponse, error) {
	env := PromptEnvelope{
		Task:     TaskSummarize,
		Language: req.Language,
		DocKind:  models.DocKindResume,
		Text:     req.ExtractedText,
	}
	return complete[models.SummarizeResponse](ctx, a, env, SummaryContract)
}

func (a *aiClient) Proofread(ctx context.Context, req models.ProofreadRequest) (*models.ProofreadResponse, error) {
	env := PromptEnvelope{
		Task:       TaskProofread,
		Language:   req.Language,
		DocKind:    models.DocKindCoverLetter,
		TargetRole: deref(req.TargetRole),
		Text:       req.ExtractedText,
	}
	return complete[models.ProofreadResponse](ctx, a, env, ProofreadContract)
}

// complete sends the prompt, checks the payload against the contract and
// only then decodes it into T.
func complete[T any](ctx context.Context, a *aiClient, env PromptEnvelope, contract *SchemaContract) (*T, error) {
	prompt := a.prompts.Build(env)
	log := a.log.With("task", env.Task, "backend", a.backend.Name(), "strategy", a.strategy.Name())
	log.Debug("sending prompt", "prompt_chars", len(prompt))

	payload, err := a.strategy.Complete(ctx, a.backend, prompt, contract)
	if err != nil {
		log.Error("model request failed", "stage", "request", "error", err)
		return nil, newServiceError(KindUpstreamFailure, err)
	}

	doc, err := parsePayload(payload)
	if err != nil {
		log.Error("model returned invalid json", "stage", "parse", "error", err, "response", truncate(string(payload), 500))
		return nil, newServiceError(KindUpstreamFailure, err)
	}

	if err := contract.Validate(doc); err != nil {
		log.Error("model response violates schema", "stage", "validate", "error", err)
		return nil, newServiceError(KindUpstreamFailure, err)
	}

	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		log.Error("failed to decode model response", "stage", "decode", "error", err)
		return nil, newServiceError(KindUpstreamFailure, fmt.Errorf("decode model response: %w", err))
	}

	log.Info("model response accepted", "response_chars", len(payload))
	return &out, nil
}

// parsePayload decodes exactly one JSON value. Numbers stay json.Number so
// the schema can tell 85 from 85.5.
func parsePayload(payload []byte) (any, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	if dec.More() {
		return nil, errors.New("parse model response: trailing data after json value")
	}
	return doc, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
