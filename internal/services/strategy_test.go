package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeBackend returns a canned reply and records what it was sent.
type fakeBackend struct {
	reply    string
	err      error
	prompt   string
	contract *SchemaContract
	calls    int
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(ctx context.Context, prompt string, contract *SchemaContract) (string, error) {
	f.calls++
	f.prompt = prompt
	f.contract = contract
	return f.reply, f.err
}

func TestNewCompletionStrategy(t *testing.T) {
	for _, name := range []string{"", "structured", "json_only"} {
		if _, err := NewCompletionStrategy(name, NewPromptBuilder()); err != nil {
			t.Errorf("NewCompletionStrategy(%q) error = %v", name, err)
		}
	}
	if _, err := NewCompletionStrategy("tools", NewPromptBuilder()); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestStructuredStrategySendsContract(t *testing.T) {
	backend := &fakeBackend{reply: "  {\"a\":1}\n"}
	s, _ := NewCompletionStrategy("structured", NewPromptBuilder())

	out, err := s.Complete(context.Background(), backend, "prompt", SummaryContract)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if string(out) != `{"a":1}` {
		t.Errorf("payload = %q", out)
	}
	if backend.contract != SummaryContract || backend.prompt != "prompt" {
		t.Errorf("backend got prompt %q contract %v", backend.prompt, backend.contract)
	}
}

func TestJSONOnlyStrategyEmbedsSchema(t *testing.T) {
	backend := &fakeBackend{reply: "Here you go:\n```json\n{\"oneLiner\":\"x\"}\n```"}
	s, _ := NewCompletionStrategy("json_only", NewPromptBuilder())

	out, err := s.Complete(context.Background(), backend, "prompt", SummaryContract)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if string(out) != `{"oneLiner":"x"}` {
		t.Errorf("payload = %q", out)
	}
	if backend.contract != nil {
		t.Error("json_only must not send the schema out of band")
	}
	if !strings.Contains(backend.prompt, `"bulletSummary"`) {
		t.Error("schema not rendered into prompt")
	}
}

func TestStrategyPropagatesBackendError(t *testing.T) {
	boom := errors.New("503 service unavailable")
	for _, name := range []string{"structured", "json_only"} {
		s, _ := NewCompletionStrategy(name, NewPromptBuilder())
		if _, err := s.Complete(context.Background(), &fakeBackend{err: boom}, "p", SummaryContract); !errors.Is(err, boom) {
			t.Errorf("%s: error = %v, want %v", name, err, boom)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prefix {\"a\":{\"b\":2}} suffix", `{"a":{"b":2}}`},
		{"  no json here ", "no json here"},
	}
	for _, tt := range tests {
		if got := extractJSON(tt.in); got != tt.want {
			t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
