package fetch

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ytget/ytdlp/errs"
	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/tubegrab/internal/model"
)

// Format selectors understood by ytdlp.WithFormat. Itag 140 is the AAC
// audio-only stream. An empty quality with mp4 lets the extractor prefer a
// progressive stream (itag 22, then 18) that carries both audio and video.
const (
	ytdlpAudioQuality = "itag=140"
	ytdlpVideoQuality = ""
	ytdlpVideoExt     = "mp4"
)

// YTDLP fetches media with the pure-Go github.com/ytget/ytdlp/v2 extractor
type YTDLP struct{}

// NewYTDLP creates a ytdlp-backed fetcher
func NewYTDLP() *YTDLP {
	return &YTDLP{}
}

// Fetch downloads req through ytdlp, forwarding its byte progress
func (y *YTDLP) Fetch(ctx context.Context, req model.DownloadRequest, onProgress ProgressFunc) error {
	id, err := ResolveID(req.URL)
	if err != nil {
		return err
	}

	quality, ext := ytdlpFormat(req.Type)
	logrus.WithFields(logrus.Fields{
		"attempt": req.ID,
		"video":   id,
		"format":  quality,
	}).Info("Starting ytdlp download")

	_, err = ytdlp.New().
		WithFormat(quality, ext).
		WithOutputPath(req.Destination).
		WithProgress(func(p ytdlp.Progress) {
			if onProgress != nil {
				onProgress(p.DownloadedSize, p.TotalSize)
			}
		}).
		Download(ctx, WatchURL(id))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return classifyYTDLPError(err)
	}
	return nil
}

func ytdlpFormat(downloadType model.DownloadType) (string, string) {
	if downloadType == model.DownloadVideoAudio {
		return ytdlpVideoQuality, ytdlpVideoExt
	}
	return ytdlpAudioQuality, ""
}

// classifyYTDLPError maps extractor errors onto the fetch error kinds.
// Download wraps transfer errors with %v, so those are matched by message.
func classifyYTDLPError(err error) error {
	switch {
	case errors.Is(err, errs.ErrVideoUnavailable), errors.Is(err, errs.ErrPrivate),
		errors.Is(err, errs.ErrAgeRestricted), errors.Is(err, errs.ErrGeoBlocked):
		return resolutionError("ytdlp resolve video", err)
	case errors.Is(err, errs.ErrRateLimited), errors.Is(err, errs.ErrCipherFailed):
		return transferError("ytdlp download", err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "format"), strings.Contains(msg, "no stream"):
		return selectionError("ytdlp select format", err)
	case strings.Contains(msg, "unavailable"), strings.Contains(msg, "private"),
		strings.Contains(msg, "not found"), strings.Contains(msg, "video id"),
		strings.Contains(msg, "player response"):
		return resolutionError("ytdlp resolve video", err)
	default:
		return transferError("ytdlp download", err)
	}
}
