package download

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/model"
	"github.com/ytget/tubegrab/internal/progress"
)

// fetchTask drives one attempt's transfer and publishes its progress
type fetchTask struct {
	fetcher fetch.Fetcher
	req     model.DownloadRequest
	out     *progress.Channel[model.Progress]
	state   *SharedState
	log     *logrus.Entry

	last model.Progress
}

// run performs the transfer and records exactly one terminal state.
// The progress channel is closed on every path so the relay can exit.
func (t *fetchTask) run(ctx context.Context) {
	defer t.out.Close()

	t.log.WithField("destination", t.req.Destination).Info("Fetch started")

	err := t.fetcher.Fetch(ctx, t.req, t.onChunk)
	if err != nil {
		failure := classify(ctx, err)
		t.log.WithError(err).WithField("kind", failure.Kind).Warn("Fetch failed")
		t.state.finish(t.req.ID, model.StateFailed, &failure)
		return
	}

	// Size may never have been known; report completion explicitly
	if t.last.Fraction < 1 {
		if t.last.Total > 0 && t.last.Received < t.last.Total {
			t.log.WithFields(logrus.Fields{
				"received": t.last.Received,
				"expected": t.last.Total,
			}).Warn("Stream ended short of the announced size")
		}
		t.last = model.Progress{Fraction: 1, Received: t.last.Received, Total: t.last.Received}
		t.out.Publish(t.last)
	}

	t.log.WithField("bytes", t.last.Received).Info("Fetch completed")
	t.state.finish(t.req.ID, model.StateDone, nil)
}

// onChunk converts a raw byte callback into a published fraction
func (t *fetchTask) onChunk(received, total int64) {
	p, err := Fraction(received, total)
	if err != nil {
		t.last.Received = received
		t.log.WithField("received", received).Debug("Progress unavailable, skipping publish")
		return
	}
	t.last = p
	t.out.Publish(p)
}

// classify maps a fetch error onto a failure kind
func classify(ctx context.Context, err error) model.Failure {
	switch {
	case ctx.Err() != nil, errors.Is(err, context.Canceled):
		return model.Failure{Kind: model.FailureCancelled, Message: "download cancelled"}
	case errors.Is(err, fetch.ErrIdentifierResolution):
		return model.Failure{Kind: model.FailureIdentifierResolution, Message: err.Error()}
	case errors.Is(err, fetch.ErrStreamSelection):
		return model.Failure{Kind: model.FailureStreamSelection, Message: err.Error()}
	default:
		return model.Failure{Kind: model.FailureTransfer, Message: err.Error()}
	}
}
