package download

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/model"
	"github.com/ytget/tubegrab/internal/progress"
)

// ErrAlreadyDownloading is returned by Start while an attempt is running
var ErrAlreadyDownloading = errors.New("a download is already in progress")

var _ Downloader = (*Controller)(nil)

// Controller owns the download state machine and spawns the fetch and relay
// goroutines for each attempt
type Controller struct {
	fetcher fetch.Fetcher
	state   *SharedState
	redraw  RedrawFunc

	attemptMu sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewController creates a controller in StateInitial. redraw may be nil.
func NewController(fetcher fetch.Fetcher, redraw RedrawFunc) *Controller {
	if redraw == nil {
		redraw = func() {}
	}

	return &Controller{
		fetcher: fetcher,
		state:   NewSharedState(),
		redraw:  redraw,
	}
}

// Snapshot reads the shared state for one frame
func (c *Controller) Snapshot() Snapshot {
	return c.state.Snapshot()
}

// Start validates req and begins a new attempt. While another attempt is
// downloading it returns ErrAlreadyDownloading and changes nothing.
func (c *Controller) Start(req model.DownloadRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid download request: %w", err)
	}

	// Fresh channel per attempt, nothing from an older attempt can reach it
	ch := progress.NewChannel(model.Progress{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	// Cancel observes Downloading only together with this attempt's cancel func
	c.attemptMu.Lock()
	if !c.state.begin(req.ID, req.Destination) {
		c.attemptMu.Unlock()
		cancel()
		return ErrAlreadyDownloading
	}
	c.cancel = cancel
	c.done = done
	fetcher := c.fetcher
	c.attemptMu.Unlock()

	log := logrus.WithFields(logrus.Fields{
		"attempt": req.ID,
		"url":     req.URL,
		"type":    req.Type.String(),
	})
	log.Info("Download attempt started")

	task := &fetchTask{
		fetcher: fetcher,
		req:     req,
		out:     ch,
		state:   c.state,
		log:     log,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer cancel()
		task.run(ctx)
	}()
	go func() {
		defer wg.Done()
		relay(ch, req.ID, c.state, c.redraw)
	}()
	go func() {
		wg.Wait()
		close(done)
		log.Debug("Download attempt goroutines exited")
	}()

	c.redraw()
	return nil
}

// SetFetcher replaces the collaborator used by the next attempt. A running
// attempt keeps the fetcher it started with.
func (c *Controller) SetFetcher(fetcher fetch.Fetcher) {
	c.attemptMu.Lock()
	c.fetcher = fetcher
	c.attemptMu.Unlock()
}

// EditURL forces StateInitial unless a download is running. It never starts
// or stops any goroutine.
func (c *Controller) EditURL() {
	if c.state.rearm() {
		c.redraw()
	}
}

// Cancel aborts the active attempt. The fetch goroutine notices at the next
// chunk boundary and the attempt ends in StateFailed with FailureCancelled.
func (c *Controller) Cancel() {
	c.attemptMu.Lock()
	defer c.attemptMu.Unlock()

	if c.cancel != nil && c.state.State().IsActive() {
		logrus.WithField("attempt", c.state.Snapshot().Attempt).Info("Cancelling download")
		c.cancel()
	}
}

// Wait blocks until the goroutines of the most recent attempt have exited,
// or ctx is done. It returns immediately if no attempt was ever started.
func (c *Controller) Wait(ctx context.Context) error {
	c.attemptMu.Lock()
	done := c.done
	c.attemptMu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
