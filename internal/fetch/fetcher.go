package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/ytget/tubegrab/internal/model"
)

// Engine names accepted by New
const (
	EngineYouTube = "youtube"
	EngineYTDLP   = "ytdlp"
	DefaultEngine = EngineYouTube
)

// YouTubeWatchURLTemplate builds a canonical watch URL from a video id
const YouTubeWatchURLTemplate = "https://www.youtube.com/watch?v=%s"

// ProgressFunc receives the bytes received so far and the total size.
// total is 0 or negative while the size is unknown.
type ProgressFunc func(received, total int64)

// Fetcher downloads the media described by a request to its destination.
// Implementations must honour ctx cancellation between chunks.
type Fetcher interface {
	Fetch(ctx context.Context, req model.DownloadRequest, onProgress ProgressFunc) error
}

// Engines returns the names of all available engines
func Engines() []string {
	return []string{EngineYouTube, EngineYTDLP}
}

// New creates a fetcher for the named engine
func New(engine string) (Fetcher, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case EngineYouTube, "":
		return NewYouTube(), nil
	case EngineYTDLP:
		return NewYTDLP(), nil
	default:
		return nil, fmt.Errorf("unknown fetch engine: %s", engine)
	}
}

// ResolveID extracts the 11-char video id from a URL or bare id
func ResolveID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", resolutionError("resolve id", model.ErrEmptyURL)
	}

	id, err := youtube.ExtractVideoID(raw)
	if err != nil {
		return "", resolutionError("resolve id", fmt.Errorf("%q: %w", raw, err))
	}
	return id, nil
}

// WatchURL returns the canonical watch URL for a video id
func WatchURL(id string) string {
	return fmt.Sprintf(YouTubeWatchURLTemplate, id)
}
