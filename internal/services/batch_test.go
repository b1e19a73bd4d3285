package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"aiready/resume-ai/internal/logger"
	"aiready/resume-ai/internal/models"
)

type stubProcessor struct {
	mu       sync.Mutex
	inFlight int
	peak     int
	fail     map[string]bool
}

func (s *stubProcessor) Process(ctx context.Context, url string, fileType models.FileType) (*models.ProcessedDocument, error) {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.peak {
		s.peak = s.inFlight
	}
	s.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()

	if s.fail[url] {
		return nil, newServiceError(KindDownloadFailed, errors.New("404"))
	}
	return &models.ProcessedDocument{ExtractedText: "text of " + url, PageCount: 1}, nil
}

func TestBatchRunnerKeepsOrderAndIsolatesFailures(t *testing.T) {
	stub := &stubProcessor{fail: map[string]bool{"u2": true}}
	runner := NewBatchRunner(stub, 2, logger.NewNop())

	jobs := []BatchJob{{"u0", models.FileTypePDF}, {"u1", models.FileTypeHWP}, {"u2", models.FileTypePDF}, {"u3", models.FileTypePDF}, {"u4", models.FileTypePDF}}
	results := runner.Run(context.Background(), jobs)

	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Job != jobs[i] {
			t.Errorf("result %d is for %v, want %v", i, r.Job, jobs[i])
		}
		if jobs[i].URL == "u2" {
			if !IsKind(r.Err, KindDownloadFailed) || r.Document != nil {
				t.Errorf("u2: got doc=%v err=%v", r.Document, r.Err)
			}
			continue
		}
		if r.Err != nil || r.Document.ExtractedText != "text of "+jobs[i].URL {
			t.Errorf("job %s: doc=%v err=%v", jobs[i].URL, r.Document, r.Err)
		}
	}
	if stub.peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", stub.peak)
	}
}

type blockingProcessor struct {
	started int32
	release chan struct{}
}

func (b *blockingProcessor) Process(ctx context.Context, url string, fileType models.FileType) (*models.ProcessedDocument, error) {
	atomic.AddInt32(&b.started, 1)
	<-b.release
	return &models.ProcessedDocument{ExtractedText: url}, nil
}

func TestBatchRunnerStopsFeedingOnCancel(t *testing.T) {
	proc := &blockingProcessor{release: make(chan struct{})}
	runner := NewBatchRunner(proc, 1, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan []BatchResult)
	go func() {
		done <- runner.Run(ctx, []BatchJob{{URL: "a"}, {URL: "b"}, {URL: "c"}})
	}()

	for atomic.LoadInt32(&proc.started) == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()
	// Let the feeder observe cancellation before the in-flight job finishes.
	time.Sleep(20 * time.Millisecond)
	close(proc.release)

	results := <-done
	if results[0].Err != nil {
		t.Errorf("started job should complete, got %v", results[0].Err)
	}
	if !errors.Is(results[2].Err, context.Canceled) {
		t.Errorf("unstarted job error = %v, want context.Canceled", results[2].Err)
	}
}
