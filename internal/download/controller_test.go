package download

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/model"
	"github.com/ytget/tubegrab/internal/progress"
)

func TestNewController(t *testing.T) {
	c := NewController(&chunkFetcher{}, nil)

	snap := c.Snapshot()
	if snap.State != model.StateInitial {
		t.Errorf("Expected Initial, got %s", snap.State)
	}

	// No attempt yet, Wait returns immediately
	if err := c.Wait(context.Background()); err != nil {
		t.Errorf("Expected nil from Wait, got %v", err)
	}

	// Cancel without an attempt is harmless
	c.Cancel()
}

func TestController_TenChunksReachDone(t *testing.T) {
	fetcher := &chunkFetcher{total: 1000, chunkSize: 100, count: 10, delay: time.Millisecond}
	rec := &frameRecorder{}
	var c *Controller
	c = NewController(fetcher, func() { rec.record(c)() })

	if err := c.Start(newTestRequest(t)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitAttempt(t, c)

	snap := c.Snapshot()
	if snap.State != model.StateDone {
		t.Fatalf("Expected Done, got %s", snap.State)
	}
	if snap.Progress.Fraction != 1 {
		t.Errorf("Expected final fraction 1, got %v", snap.Progress.Fraction)
	}
	if snap.Progress.Received != 1000 || snap.Progress.Total != 1000 {
		t.Errorf("Expected 1000/1000 bytes, got %+v", snap.Progress)
	}

	frames := rec.snapshots()
	if len(frames) < 2 {
		t.Fatalf("Expected several redraws, got %d", len(frames))
	}

	last := -1.0
	sawDone := false
	for i, frame := range frames {
		if frame.Progress.Fraction < last {
			t.Errorf("frame %d: fraction regressed from %v to %v", i, last, frame.Progress.Fraction)
		}
		last = frame.Progress.Fraction

		switch frame.State {
		case model.StateDownloading:
			if sawDone {
				t.Errorf("frame %d: Downloading observed after Done", i)
			}
		case model.StateDone:
			sawDone = true
		default:
			t.Errorf("frame %d: unexpected state %s", i, frame.State)
		}
	}

	if frames[len(frames)-1].State != model.StateDone {
		t.Errorf("Expected last frame Done, got %s", frames[len(frames)-1].State)
	}
}

func TestFetchTask_UnknownTotalUntilLastChunk(t *testing.T) {
	fetcher := &chunkFetcher{total: 1000, chunkSize: 100, count: 10, unknownUntilLast: true}
	req := newTestRequest(t)
	state := NewSharedState()
	state.begin(req.ID, req.Destination)

	ch := progress.NewChannel(model.Progress{})
	var published []float64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			p, ok := ch.Wait(context.Background())
			if !ok {
				return
			}
			published = append(published, p.Fraction)
		}
	}()

	task := &fetchTask{fetcher: fetcher, req: req, out: ch, state: state, log: testLogger()}
	task.run(context.Background())
	wg.Wait()

	if len(published) == 0 {
		t.Fatal("Expected at least the final fraction to be published")
	}
	for _, f := range published {
		if f < 0 || f > 1 {
			t.Errorf("Published fraction out of range: %v", f)
		}
	}
	if published[len(published)-1] != 1 {
		t.Errorf("Expected last fraction 1, got %v", published[len(published)-1])
	}
	if state.State() != model.StateDone {
		t.Errorf("ProgressUnavailable must not abort the transfer, state = %s", state.State())
	}
}

func TestFetchTask_NeverKnownTotalCompletes(t *testing.T) {
	fetcher := &chunkFetcher{total: 0, chunkSize: 100, count: 3}
	rec := &frameRecorder{}
	var c *Controller
	c = NewController(fetcher, func() { rec.record(c)() })

	if err := c.Start(newTestRequest(t)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitAttempt(t, c)

	snap := c.Snapshot()
	if snap.State != model.StateDone {
		t.Fatalf("Expected Done, got %s", snap.State)
	}
	if snap.Progress.Fraction != 1 || snap.Progress.Received != 300 {
		t.Errorf("Expected completion sample 1.0 / 300 bytes, got %+v", snap.Progress)
	}
}

func TestController_StartWhileDownloadingIsNoop(t *testing.T) {
	fetcher := newBlockingFetcher()
	c := NewController(fetcher, nil)

	first := newTestRequest(t)
	if err := c.Start(first); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitStarted(t, fetcher)

	for i := 0; i < 3; i++ {
		err := c.Start(newTestRequest(t))
		if !errors.Is(err, ErrAlreadyDownloading) {
			t.Errorf("Expected ErrAlreadyDownloading, got %v", err)
		}
	}

	snap := c.Snapshot()
	if snap.Attempt != first.ID {
		t.Errorf("Active attempt changed to %s", snap.Attempt)
	}
	if snap.State != model.StateDownloading {
		t.Errorf("Expected Downloading, got %s", snap.State)
	}

	close(fetcher.release)
	waitAttempt(t, c)

	if calls := fetcher.calls.Load(); calls != 1 {
		t.Errorf("Expected exactly 1 fetch, got %d", calls)
	}
	if c.Snapshot().State != model.StateDone {
		t.Errorf("Expected Done, got %s", c.Snapshot().State)
	}
}

func TestController_EditURLWhileDoneResetsToInitial(t *testing.T) {
	fetcher := &chunkFetcher{total: 100, chunkSize: 50, count: 2}
	c := NewController(fetcher, nil)

	if err := c.Start(newTestRequest(t)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitAttempt(t, c)

	if c.Snapshot().State != model.StateDone {
		t.Fatalf("Expected Done, got %s", c.Snapshot().State)
	}

	c.EditURL()

	snap := c.Snapshot()
	if snap.State != model.StateInitial {
		t.Errorf("Expected Initial after edit, got %s", snap.State)
	}
	if snap.Progress.Fraction != 0 {
		t.Errorf("Expected progress reset, got %v", snap.Progress.Fraction)
	}

	time.Sleep(20 * time.Millisecond)
	if calls := fetcher.calls.Load(); calls != 1 {
		t.Errorf("EditURL must not start a fetch, got %d calls", calls)
	}
}

func TestController_EditURLWhileDownloadingIgnored(t *testing.T) {
	fetcher := newBlockingFetcher()
	c := NewController(fetcher, nil)

	if err := c.Start(newTestRequest(t)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitStarted(t, fetcher)

	c.EditURL()
	if c.Snapshot().State != model.StateDownloading {
		t.Errorf("Expected Downloading to survive edit, got %s", c.Snapshot().State)
	}

	close(fetcher.release)
	waitAttempt(t, c)
}

func TestController_FailureKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind model.FailureKind
	}{
		{&fetch.Error{Kind: fetch.ErrIdentifierResolution, Op: "get video", Err: errors.New("404")}, model.FailureIdentifierResolution},
		{&fetch.Error{Kind: fetch.ErrStreamSelection, Op: "select", Err: errors.New("none")}, model.FailureStreamSelection},
		{&fetch.Error{Kind: fetch.ErrTransfer, Op: "read chunk", Err: errors.New("reset")}, model.FailureTransfer},
		{errors.New("something unexpected"), model.FailureTransfer},
		{fmt.Errorf("wrapped: %w", context.Canceled), model.FailureCancelled},
	}

	for _, test := range tests {
		rec := &frameRecorder{}
		var c *Controller
		c = NewController(&errorFetcher{err: test.err}, func() { rec.record(c)() })

		if err := c.Start(newTestRequest(t)); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		// Wait returning proves the relay exited after the channel closed
		waitAttempt(t, c)

		snap := c.Snapshot()
		if snap.State != model.StateFailed {
			t.Errorf("%v: expected Failed, got %s", test.err, snap.State)
			continue
		}
		if snap.Failure == nil || snap.Failure.Kind != test.kind {
			t.Errorf("%v: expected kind %s, got %+v", test.err, test.kind, snap.Failure)
		}

		frames := rec.snapshots()
		if len(frames) == 0 || frames[len(frames)-1].State != model.StateFailed {
			t.Errorf("%v: expected a final redraw showing Failed", test.err)
		}
	}
}

func TestController_FailedCanBeRearmed(t *testing.T) {
	c := NewController(&errorFetcher{err: errors.New("boom")}, nil)

	if err := c.Start(newTestRequest(t)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitAttempt(t, c)

	c.EditURL()
	if snap := c.Snapshot(); snap.State != model.StateInitial || snap.Failure != nil {
		t.Errorf("Expected clean Initial, got %+v", snap)
	}
}

func TestController_Cancel(t *testing.T) {
	fetcher := newBlockingFetcher()
	c := NewController(fetcher, nil)

	if err := c.Start(newTestRequest(t)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitStarted(t, fetcher)

	c.Cancel()
	waitAttempt(t, c)

	snap := c.Snapshot()
	if snap.State != model.StateFailed {
		t.Fatalf("Expected Failed, got %s", snap.State)
	}
	if snap.Failure == nil || snap.Failure.Kind != model.FailureCancelled {
		t.Errorf("Expected Cancelled failure, got %+v", snap.Failure)
	}
}

func TestController_CancelFromAnotherGoroutineRightAfterStart(t *testing.T) {
	for run := 0; run < 50; run++ {
		fetcher := newBlockingFetcher()
		c := NewController(fetcher, nil)

		cancelled := make(chan struct{})
		go func() {
			defer close(cancelled)
			for c.Snapshot().State != model.StateDownloading {
				runtime.Gosched()
			}
			c.Cancel()
		}()

		if err := c.Start(newTestRequest(t)); err != nil {
			t.Fatalf("run %d: Start failed: %v", run, err)
		}
		<-cancelled
		waitAttempt(t, c)

		snap := c.Snapshot()
		if snap.State != model.StateFailed || snap.Failure == nil || snap.Failure.Kind != model.FailureCancelled {
			t.Fatalf("run %d: expected Failed(Cancelled), got %s %+v", run, snap.State, snap.Failure)
		}
	}
}

func TestFetchTask_ShortStreamLogsWarning(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	fetcher := &chunkFetcher{total: 1000, chunkSize: 100, count: 5}
	state := NewSharedState()
	req := newTestRequest(t)
	state.begin(req.ID, req.Destination)

	ch := progress.NewChannel(model.Progress{})
	task := &fetchTask{fetcher: fetcher, req: req, out: ch, state: state, log: logrus.NewEntry(logger)}
	task.run(context.Background())

	if state.State() != model.StateDone {
		t.Fatalf("Expected Done, got %s", state.State())
	}
	if task.last.Fraction != 1 || task.last.Received != 500 || task.last.Total != 500 {
		t.Errorf("Expected completion sample 500/500 at 1.0, got %+v", task.last)
	}

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["expected"] == int64(1000) && entry.Data["received"] == int64(500) {
			warned = true
		}
	}
	if !warned {
		t.Error("Expected a warning about the stream ending short of its total")
	}
}

func TestFetchTask_FullStreamDoesNotWarn(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	fetcher := &chunkFetcher{total: 500, chunkSize: 100, count: 5}
	state := NewSharedState()
	req := newTestRequest(t)
	state.begin(req.ID, req.Destination)

	task := &fetchTask{fetcher: fetcher, req: req, out: progress.NewChannel(model.Progress{}), state: state, log: logrus.NewEntry(logger)}
	task.run(context.Background())

	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			t.Errorf("Unexpected warning: %s", entry.Message)
		}
	}
}

func TestController_InvalidRequest(t *testing.T) {
	fetcher := &chunkFetcher{}
	c := NewController(fetcher, nil)

	err := c.Start(model.DownloadRequest{ID: "x", URL: "", Destination: "/tmp/out.mp3"})
	if !errors.Is(err, model.ErrEmptyURL) {
		t.Errorf("Expected ErrEmptyURL, got %v", err)
	}

	err = c.Start(model.NewDownloadRequest("dQw4w9WgXcQ", "relative.mp3", model.DownloadAudioOnly))
	if !errors.Is(err, model.ErrRelativeDestination) {
		t.Errorf("Expected ErrRelativeDestination, got %v", err)
	}

	if c.Snapshot().State != model.StateInitial {
		t.Errorf("Invalid request must not change state, got %s", c.Snapshot().State)
	}
	if fetcher.calls.Load() != 0 {
		t.Error("Invalid request must not reach the fetcher")
	}
}

func TestController_NewAttemptStartsFresh(t *testing.T) {
	first := &chunkFetcher{total: 100, chunkSize: 100, count: 1}
	c := NewController(first, nil)

	if err := c.Start(newTestRequest(t)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitAttempt(t, c)
	if c.Snapshot().Progress.Fraction != 1 {
		t.Fatalf("Expected first attempt to reach 1, got %v", c.Snapshot().Progress.Fraction)
	}

	// Start again from Done with a fetcher that stalls before any progress
	second := newBlockingFetcher()
	c.SetFetcher(second)
	req := newTestRequest(t)
	if err := c.Start(req); err != nil {
		t.Fatalf("Second Start failed: %v", err)
	}

	snap := c.Snapshot()
	if snap.Attempt != req.ID {
		t.Errorf("Expected attempt %s, got %s", req.ID, snap.Attempt)
	}
	if snap.Progress.Fraction == 1 {
		t.Error("Previous attempt's fraction leaked into the new attempt")
	}
	if snap.Progress.Fraction < 0 {
		t.Errorf("Fraction below zero: %v", snap.Progress.Fraction)
	}

	waitStarted(t, second)
	close(second.release)
	waitAttempt(t, c)
	if c.Snapshot().State != model.StateDone {
		t.Errorf("Expected Done, got %s", c.Snapshot().State)
	}
}

func TestClassify(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context wins over the error kind
	failure := classify(ctx, &fetch.Error{Kind: fetch.ErrTransfer, Op: "read chunk"})
	if failure.Kind != model.FailureCancelled {
		t.Errorf("Expected Cancelled, got %s", failure.Kind)
	}

	failure = classify(context.Background(), &fetch.Error{Kind: fetch.ErrStreamSelection, Op: "select audio stream"})
	if failure.Kind != model.FailureStreamSelection {
		t.Errorf("Expected StreamSelectionFailure, got %s", failure.Kind)
	}
	if failure.Message != "select audio stream" {
		t.Errorf("unexpected message: %s", failure.Message)
	}
}
