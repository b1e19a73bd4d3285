package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"aiready/resume-ai/internal/logger"
)

func TestConvertToPDF(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.hwp")

	runner := &scriptedRunner{hooks: map[string]func([]string) ([]byte, []byte, error){
		"soffice": func(args []string) ([]byte, []byte, error) {
			return nil, nil, os.WriteFile(filepath.Join(dir, "source.pdf"), []byte("%PDF"), 0644)
		},
	}}

	conv := NewFormatConverter("soffice", runner, logger.NewNop())
	got, err := conv.ConvertToPDF(context.Background(), src)
	if err != nil {
		t.Fatalf("ConvertToPDF() error = %v", err)
	}
	if want := filepath.Join(dir, "source.pdf"); got != want {
		t.Errorf("pdf path = %q, want %q", got, want)
	}

	wantArgs := []string{"--headless", "--convert-to", "pdf", src, "--outdir", dir}
	if !reflect.DeepEqual(runner.calls[0].args, wantArgs) {
		t.Errorf("args = %v, want %v", runner.calls[0].args, wantArgs)
	}
}

func TestConvertToPDFFailures(t *testing.T) {
	tests := []struct {
		name  string
		hooks map[string]func([]string) ([]byte, []byte, error)
	}{
		{"tool missing", nil},
		{"non-zero exit", map[string]func([]string) ([]byte, []byte, error){
			"libreoffice": func([]string) ([]byte, []byte, error) {
				return nil, []byte("Error: source file could not be loaded"), errors.New("exit status 1")
			},
		}},
		{"no output file", map[string]func([]string) ([]byte, []byte, error){
			"libreoffice": func([]string) ([]byte, []byte, error) { return nil, nil, nil },
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewFormatConverter("", &scriptedRunner{hooks: tt.hooks}, logger.NewNop())
			_, err := conv.ConvertToPDF(context.Background(), filepath.Join(t.TempDir(), "source.hwp"))
			if !IsKind(err, KindConversionFailed) {
				t.Fatalf("error = %v, want ConversionFailed", err)
			}
		})
	}
}
