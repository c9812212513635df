package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/ytget/tubegrab/internal/download"
	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/model"
)

// runDownload starts one attempt and renders it on a terminal progress bar
// until the controller reports a terminal state. Interrupts and the timeout
// both cancel the attempt.
func runDownload(fetcher fetch.Fetcher, req model.DownloadRequest, timeout time.Duration, stderr io.Writer) int {
	redraw := make(chan struct{}, 1)
	controller := download.NewController(fetcher, func() {
		select {
		case redraw <- struct{}{}:
		default:
		}
	})

	if err := controller.Start(req); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	timer := time.AfterFunc(timeout, func() {
		logrus.WithField("timeout", timeout).Warn("Download timed out")
		controller.Cancel()
	})
	defer timer.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := controller.Wait(context.Background()); err != nil {
			logrus.WithError(err).Debug("Wait returned early")
		}
	}()

	bar := newBar(stderr, req)
	for {
		select {
		case <-redraw:
			renderBar(bar, controller.Snapshot())
		case <-sigCh:
			fmt.Fprintln(stderr, "\n[tubegrab] Received interrupt, cancelling...")
			controller.Cancel()
		case <-done:
			return finish(bar, controller.Snapshot(), stderr)
		}
	}
}

func newBar(w io.Writer, req model.DownloadRequest) *progressbar.ProgressBar {
	return progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(req.Type.String()),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// renderBar paints one frame of the snapshot
func renderBar(bar *progressbar.ProgressBar, snap download.Snapshot) {
	if snap.State != model.StateDownloading {
		return
	}
	if snap.Progress.Total > 0 {
		bar.Describe(fmt.Sprintf("%s / %s",
			humanize.Bytes(uint64(snap.Progress.Received)),
			humanize.Bytes(uint64(snap.Progress.Total))))
	}
	_ = bar.Set(int(snap.Progress.Fraction * 100))
}

// finish prints the terminal state and maps it onto an exit code
func finish(bar *progressbar.ProgressBar, snap download.Snapshot, stderr io.Writer) int {
	if !snap.State.IsTerminal() {
		fmt.Fprintf(stderr, "\nDownload ended in unexpected state %s\n", snap.State)
		return ExitFailed
	}

	if snap.State == model.StateDone {
		_ = bar.Set(100)
		_ = bar.Finish()
		fmt.Fprintf(stderr, "\nDownload complete! %s -> %s\n",
			humanize.Bytes(uint64(snap.Progress.Received)), snap.Destination)
		return ExitSuccess
	}

	_ = bar.Exit()
	failure := "unknown failure"
	if snap.Failure != nil {
		failure = snap.Failure.String()
	}
	fmt.Fprintf(stderr, "\nDownload failed: %s\n", failure)
	return ExitFailed
}
