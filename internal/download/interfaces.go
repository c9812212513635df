package download

import (
	"context"

	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/model"
)

// RedrawFunc asks the host display loop to repaint soon. It must not block.
type RedrawFunc func()

// Downloader defines the interface for the download controller.
type Downloader interface {
	// Start begins a new attempt; it is a no-op while one is downloading
	Start(req model.DownloadRequest) error

	// EditURL re-arms the state machine after the source text changed
	EditURL()

	// Cancel aborts the active attempt, if any
	Cancel()

	// Snapshot reads the shared state for one frame
	Snapshot() Snapshot

	// SetFetcher swaps the collaborator for later attempts
	SetFetcher(fetcher fetch.Fetcher)

	// Wait blocks until the current attempt's goroutines have exited
	Wait(ctx context.Context) error
}
