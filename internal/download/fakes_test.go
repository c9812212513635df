package download

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/model"
)

// chunkFetcher reports count chunks of chunkSize bytes against total.
// With unknownUntilLast the total is reported as 0 until the final chunk.
type chunkFetcher struct {
	total            int64
	chunkSize        int64
	count            int
	unknownUntilLast bool
	delay            time.Duration
	calls            atomic.Int32
}

func (f *chunkFetcher) Fetch(ctx context.Context, req model.DownloadRequest, onProgress fetch.ProgressFunc) error {
	f.calls.Add(1)
	var received int64
	for i := 1; i <= f.count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		received += f.chunkSize
		total := f.total
		if f.unknownUntilLast && i < f.count {
			total = 0
		}
		onProgress(received, total)
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
	}
	return nil
}

// errorFetcher fails immediately with err
type errorFetcher struct {
	err error
}

func (f *errorFetcher) Fetch(ctx context.Context, req model.DownloadRequest, onProgress fetch.ProgressFunc) error {
	return f.err
}

// blockingFetcher publishes one chunk, then blocks until released or cancelled
type blockingFetcher struct {
	release chan struct{}
	started chan struct{}
	calls   atomic.Int32
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{
		release: make(chan struct{}),
		started: make(chan struct{}, 8),
	}
}

func (f *blockingFetcher) Fetch(ctx context.Context, req model.DownloadRequest, onProgress fetch.ProgressFunc) error {
	f.calls.Add(1)
	onProgress(10, 100)
	f.started <- struct{}{}
	select {
	case <-f.release:
		onProgress(100, 100)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// frameRecorder plays the display loop: each redraw reads a snapshot
type frameRecorder struct {
	mu     sync.Mutex
	frames []Snapshot
}

func (r *frameRecorder) record(c *Controller) RedrawFunc {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.frames = append(r.frames, c.Snapshot())
	}
}

func (r *frameRecorder) snapshots() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.frames...)
}

func newTestRequest(t *testing.T) model.DownloadRequest {
	t.Helper()
	dest := filepath.Join(t.TempDir(), "soundtrack.mp3")
	return model.NewDownloadRequest("https://www.youtube.com/watch?v=dQw4w9WgXcQ", dest, model.DownloadAudioOnly)
}

func waitAttempt(t *testing.T, c *Controller) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Wait(ctx); err != nil {
		t.Fatalf("attempt did not finish: %v", err)
	}
}

func waitStarted(t *testing.T, f *blockingFetcher) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(5 * time.Second):
		t.Fatal("fetcher did not start")
	}
}
