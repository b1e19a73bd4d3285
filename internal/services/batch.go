package services

import (
	"context"
	"sync"

	"aiready/resume-ai/internal/logger"
	"aiready/resume-ai/internal/models"
)

type BatchJob struct {
	URL      string
	FileType models.FileType
}

type BatchResult struct {
	Job      BatchJob
	Document *models.ProcessedDocument
	Err      error
}

// BatchRunner feeds jobs to a fixed number of workers, each running one
// pipeline at a time.
type BatchRunner interface {
	Run(ctx context.Context, jobs []BatchJob) []BatchResult
}

type batchRunner struct {
	processor   DocumentProcessor
	concurrency int
	log         *logger.Logger
}

func NewBatchRunner(processor DocumentProcessor, concurrency int, log *logger.Logger) BatchRunner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &batchRunner{
		processor:   processor,
		concurrency: concurrency,
		log:         log.With("service", "batch"),
	}
}

// Run returns one result per job, in input order. Jobs not yet started when
// ctx is done are reported with ctx.Err().
func (b *batchRunner) Run(ctx context.Context, jobs []BatchJob) []BatchResult {
	results := make([]BatchResult, len(jobs))
	queue := make(chan int)

	workers := b.concurrency
	if workers > len(jobs) {
		workers = len(jobs)
	}
	b.log.Info("starting batch", "jobs", len(jobs), "workers", workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range queue {
				job := jobs[idx]
				doc, err := b.processor.Process(ctx, job.URL, job.FileType)
				results[idx] = BatchResult{Job: job, Document: doc, Err: err}
				if err != nil {
					b.log.Warn("job failed", "worker", workerID, "url", job.URL, "error", err)
				} else {
					b.log.Debug("job completed", "worker", workerID, "url", job.URL, "pages", doc.PageCount)
				}
			}
		}(i + 1)
	}

	next := 0
feed:
	for ; next < len(jobs); next++ {
		select {
		case queue <- next:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	for ; next < len(jobs); next++ {
		results[next] = BatchResult{Job: jobs[next], Err: ctx.Err()}
	}
	return results
}
