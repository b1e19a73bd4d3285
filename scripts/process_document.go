package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"aiready/resume-ai/internal/config"
	"aiready/resume-ai/internal/logger"
	"aiready/resume-ai/internal/models"
	"aiready/resume-ai/internal/services"
)

type output struct {
	URL      string                    `json:"url"`
	Document *models.ProcessedDocument `json:"document,omitempty"`
	Summary  *models.SummarizeResponse `json:"summary,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred cleanup always happens:
// 0 when every document succeeded, 1 on any failure, 2 on bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("process_document", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		fileType  = fs.String("type", "", "pdf or hwp (default: inferred from the URL path)")
		summarize = fs.Bool("summarize", false, "summarize each extracted document")
		language  = fs.String("lang", "ko", "summary language: ko or en")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: process_document [flags] URL [URL...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	urls := fs.Args()
	if len(urls) == 0 {
		fs.Usage()
		return 2
	}

	jobs, err := buildJobs(urls, *fileType)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg := config.Load()
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	ctx := context.Background()

	processor, closeOCR, err := services.BuildDocumentProcessor(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize document pipeline", "error", err)
		return 1
	}
	defer closeOCR()

	var aiClient services.AIClient
	if *summarize {
		if err := cfg.Validate(); err != nil {
			log.Error("invalid configuration", "error", err)
			return 1
		}
		if aiClient, err = services.BuildAIClient(ctx, cfg, log); err != nil {
			log.Error("failed to initialize ai client", "error", err)
			return 1
		}
	}

	results := services.NewBatchRunner(processor, cfg.Document.BatchConcurrency, log).Run(ctx, jobs)

	failed := 0
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	for _, r := range results {
		out := output{URL: r.Job.URL, Document: r.Document}
		if r.Err != nil {
			out.Error = r.Err.Error()
			failed++
		} else if aiClient != nil {
			summary, err := aiClient.Summarize(ctx, models.SummarizeRequest{
				ExtractedText: r.Document.ExtractedText,
				Language:      models.Language(*language),
			})
			if err != nil {
				out.Error = err.Error()
				failed++
			}
			out.Summary = summary
		}
		if err := enc.Encode(out); err != nil {
			log.Error("failed to write result", "error", err)
		}
	}

	log.Info("batch finished", "documents", len(results), "failed", failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func buildJobs(urls []string, fileType string) ([]services.BatchJob, error) {
	jobs := make([]services.BatchJob, 0, len(urls))
	for _, u := range urls {
		ft := models.FileType(strings.ToLower(fileType))
		if ft == "" {
			ft = inferFileType(u)
		}
		if !ft.Valid() {
			return nil, fmt.Errorf("cannot determine file type of %s, pass -type", u)
		}
		jobs = append(jobs, services.BatchJob{URL: u, FileType: ft})
	}
	return jobs, nil
}

func inferFileType(rawURL string) models.FileType {
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return models.FileType(strings.TrimPrefix(strings.ToLower(path.Ext(p)), "."))
}
