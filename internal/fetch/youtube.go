package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/sirupsen/logrus"

	"github.com/ytget/tubegrab/internal/model"
)

// MIME type prefixes used for stream selection
const (
	mimeAudioPrefix = "audio/"
	mimeVideoPrefix = "video/"
)

var errNoMatchingFormat = errors.New("video has no stream for the requested type")

// YouTube fetches media with github.com/kkdai/youtube/v2
type YouTube struct {
	client    *youtube.Client
	chunkSize int
}

// NewYouTube creates a YouTube fetcher with a default client
func NewYouTube() *YouTube {
	return &YouTube{
		client:    &youtube.Client{},
		chunkSize: DefaultChunkSize,
	}
}

// Fetch resolves the video, picks a stream and streams it to req.Destination
func (y *YouTube) Fetch(ctx context.Context, req model.DownloadRequest, onProgress ProgressFunc) error {
	id, err := ResolveID(req.URL)
	if err != nil {
		return err
	}

	video, err := y.client.GetVideoContext(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return resolutionError("get video "+id, err)
	}

	format, err := SelectFormat(video.Formats, req.Type)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"attempt": req.ID,
		"video":   id,
		"title":   video.Title,
		"itag":    format.ItagNo,
		"mime":    format.MimeType,
	}).Info("Selected stream")

	stream, size, err := y.client.GetStreamContext(ctx, video, format)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return transferError("open stream", err)
	}
	defer stream.Close()

	if size <= 0 {
		size = format.ContentLength
	}

	file, err := os.Create(req.Destination)
	if err != nil {
		return transferError("create file", err)
	}

	_, copyErr := CopyChunks(ctx, file, stream, size, y.chunkSize, onProgress)
	closeErr := file.Close()
	if copyErr != nil {
		return copyErr
	}
	if closeErr != nil {
		return transferError("close file", closeErr)
	}
	return nil
}

// SelectFormat returns the highest-bitrate format matching the download type.
// AudioOnly wants an audio/* stream; VideoAudio wants a video/* stream that also
// carries audio channels.
func SelectFormat(formats youtube.FormatList, downloadType model.DownloadType) (*youtube.Format, error) {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !formatMatches(f, downloadType) {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}

	if best == nil {
		return nil, selectionError(fmt.Sprintf("select %s stream", downloadType), errNoMatchingFormat)
	}
	return best, nil
}

func formatMatches(f *youtube.Format, downloadType model.DownloadType) bool {
	switch downloadType {
	case model.DownloadVideoAudio:
		return strings.HasPrefix(f.MimeType, mimeVideoPrefix) && f.AudioChannels > 0
	default:
		return strings.HasPrefix(f.MimeType, mimeAudioPrefix)
	}
}
