package model

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Validation errors for DownloadRequest
var (
	ErrEmptyURL            = errors.New("url is empty")
	ErrUnsupportedScheme   = errors.New("URL must start with http:// or https://")
	ErrEmptyDestination    = errors.New("destination path is empty")
	ErrRelativeDestination = errors.New("destination path must be absolute")
)

// DownloadRequest is a single download attempt: what to fetch and where to put it
type DownloadRequest struct {
	ID          string // attempt id
	URL         string // source URL or bare video id
	Destination string // absolute output file path
	Type        DownloadType
}

// NewDownloadRequest creates a request with a fresh attempt id.
// The URL is cleaned of line breaks and surrounding whitespace.
func NewDownloadRequest(rawURL, destination string, downloadType DownloadType) DownloadRequest {
	return DownloadRequest{
		ID:          "attempt-" + uuid.NewString(),
		URL:         CleanURL(rawURL),
		Destination: destination,
		Type:        downloadType,
	}
}

// Validate checks that the request can be handed to a fetcher
func (r DownloadRequest) Validate() error {
	if r.URL == "" {
		return ErrEmptyURL
	}
	if err := ValidateURL(r.URL); err != nil {
		return err
	}
	if r.Destination == "" {
		return ErrEmptyDestination
	}
	if !filepath.IsAbs(r.Destination) {
		return fmt.Errorf("%w: %s", ErrRelativeDestination, r.Destination)
	}
	return nil
}

// ValidateURL accepts empty input, bare ids and http(s) URLs
func ValidateURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" || !strings.Contains(input, "://") {
		return nil
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return ErrUnsupportedScheme
	}

	return nil
}

// CleanURL removes characters that sneak in via copy/paste
func CleanURL(raw string) string {
	clean := strings.ReplaceAll(raw, "\n", "")
	clean = strings.ReplaceAll(clean, "\r", "")
	clean = strings.ReplaceAll(clean, "\t", " ")
	return strings.TrimSpace(clean)
}
