package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aiready/resume-ai/internal/logger"
	"aiready/resume-ai/internal/models"
)

func newTestAIClient(t *testing.T, backend LLMBackend, strategy string) AIClient {
	t.Helper()
	prompts := NewPromptBuilder()
	s, err := NewCompletionStrategy(strategy, prompts)
	if err != nil {
		t.Fatal(err)
	}
	return NewAIClient(backend, s, prompts, logger.NewNop())
}

func TestEvaluatePreservesScores(t *testing.T) {
	role := "Backend Engineer"
	for _, strategy := range []string{"structured", "json_only"} {
		t.Run(strategy, func(t *testing.T) {
			backend := &fakeBackend{reply: validEvaluation}
			client := newTestAIClient(t, backend, strategy)

			resp, err := client.Evaluate(context.Background(), models.EvaluateRequest{
				ExtractedText: "경력 사항",
				DocKind:       models.DocKindResume,
				Language:      models.LanguageKorean,
				TargetRole:    &role,
			})
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if resp.Report.OverallScore != 85 || resp.Report.RubricScores.RoleFit != 88 {
				t.Errorf("scores changed: %+v", resp.Report)
			}
			if resp.ImprovedVersion != "개선된 이력서" {
				t.Errorf("improvedVersion = %q", resp.ImprovedVersion)
			}
			if len(resp.Report.ActionableEdits) != 1 || resp.Report.ActionableEdits[0].Section != "경력" {
				t.Errorf("actionableEdits = %+v", resp.Report.ActionableEdits)
			}
			if !strings.Contains(backend.prompt, "목표 직무: Backend Engineer") {
				t.Error("target role missing from prompt")
			}
			if backend.calls != 1 {
				t.Errorf("backend called %d times, want 1", backend.calls)
			}
		})
	}
}

func TestJSONOnlyAcceptsFencedPayload(t *testing.T) {
	backend := &fakeBackend{reply: "```json\n" + `{"bulletSummary":["Go 5년"],"oneLiner":"백엔드 개발자","keywords":["Go","Kafka"]}` + "\n```"}
	client := newTestAIClient(t, backend, "json_only")

	resp, err := client.Summarize(context.Background(), models.SummarizeRequest{ExtractedText: "text", Language: models.LanguageKorean})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if resp.OneLiner != "백엔드 개발자" || len(resp.Keywords) != 2 {
		t.Errorf("unexpected summary %+v", resp)
	}
}

func TestProofread(t *testing.T) {
	backend := &fakeBackend{reply: `{"correctedText":"교정본","comments":[{"lineOrSection":"2문단","comment":"주어 누락"}]}`}
	client := newTestAIClient(t, backend, "structured")

	resp, err := client.Proofread(context.Background(), models.ProofreadRequest{ExtractedText: "원문", Language: models.LanguageKorean})
	if err != nil {
		t.Fatalf("Proofread() error = %v", err)
	}
	if resp.CorrectedText != "교정본" || resp.Comments[0].LineOrSection != "2문단" {
		t.Errorf("unexpected proofread %+v", resp)
	}
	if backend.contract != ProofreadContract {
		t.Error("structured strategy should attach the proofread contract")
	}
	if !strings.Contains(backend.prompt, "목표 직무: 미지정") {
		t.Error("missing role should render as unspecified")
	}
}

func TestAIClientRejectsBadResponses(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
	}{
		{"malformed json", &fakeBackend{reply: `{"bulletSummary": [`}},
		{"not json", &fakeBackend{reply: "죄송합니다, 요약할 수 없습니다."}},
		{"trailing value", &fakeBackend{reply: `{"bulletSummary":[],"oneLiner":"","keywords":[]} {}`}},
		{"schema violation", &fakeBackend{reply: `{"bulletSummary":"one","oneLiner":"x","keywords":[]}`}},
		{"backend error", &fakeBackend{err: errors.New("context deadline exceeded")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestAIClient(t, tt.backend, "structured")
			resp, err := client.Summarize(context.Background(), models.SummarizeRequest{ExtractedText: "x", Language: models.LanguageEnglish})
			if resp != nil {
				t.Errorf("expected nil response, got %+v", resp)
			}
			if !IsKind(err, KindUpstreamFailure) {
				t.Fatalf("error = %v, want UpstreamFailure", err)
			}
			if tt.backend.calls != 1 {
				t.Errorf("backend called %d times, want exactly 1", tt.backend.calls)
			}
		})
	}
}

func TestEvaluateRejectsOutOfRangeScore(t *testing.T) {
	backend := &fakeBackend{reply: strings.Replace(validEvaluation, `"overallScore": 85`, `"overallScore": 150`, 1)}
	client := newTestAIClient(t, backend, "structured")

	_, err := client.Evaluate(context.Background(), models.EvaluateRequest{ExtractedText: "x", DocKind: models.DocKindResume, Language: models.LanguageKorean})
	if !IsKind(err, KindUpstreamFailure) {
		t.Fatalf("error = %v, want UpstreamFailure", err)
	}
}
