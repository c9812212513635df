// Command tubegrab-cli downloads one video or soundtrack from the terminal,
// driving the same download controller as the desktop app with a progress
// bar as its render loop.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/tubegrab/internal/config"
	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/logging"
	"github.com/ytget/tubegrab/internal/model"
	"github.com/ytget/tubegrab/internal/platform"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitFailed      = 1
	ExitInvalidArgs = 2
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// newFetcher builds the collaborator for an engine name
var newFetcher = fetch.New

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("tubegrab-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	rawURL := fs.String("url", "", "YouTube URL or 11-char video id (required)")
	output := fs.String("out", "", "Output file path (default: <download_dir>/soundtrack.mp3 or video.mp4)")
	typeName := fs.String("type", "audio", "What to download: audio or video")
	engine := fs.String("engine", "", "Fetch engine: "+strings.Join(fetch.Engines(), " or "))
	configPath := fs.String("config", "", "Path to YAML config file")
	logLevel := fs.String("log-level", "", "Log level: "+strings.Join(logging.Levels(), ", "))
	showVersion := fs.Bool("version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `Usage: tubegrab-cli -url <url> [options]

Download the best audio-only or video+audio stream of a YouTube video.
Press Ctrl+C to cancel a running download.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if *showVersion {
		fmt.Fprintf(stderr, "tubegrab-cli %s\n", version)
		return ExitSuccess
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
		cfg = loaded
	}
	if *engine != "" {
		cfg.Engine = *engine
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	if err := logging.SetupWriter(stderr, cfg.LogLevel); err != nil {
		return ExitInvalidArgs
	}

	if strings.TrimSpace(*rawURL) == "" {
		fmt.Fprintln(stderr, "Error: -url is required")
		fs.Usage()
		return ExitInvalidArgs
	}

	downloadType, err := parseType(*typeName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	dest := *output
	if dest == "" {
		dest = filepath.Join(cfg.DownloadDir, downloadType.SuggestedFileName())
	}
	if dest, err = filepath.Abs(dest); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	fetcher, err := newFetcher(cfg.Engine)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	if err := platform.EnsureParentDir(dest); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFailed
	}

	return runDownload(fetcher, model.NewDownloadRequest(*rawURL, dest, downloadType), cfg.Timeout, stderr)
}

// parseType maps the -type flag onto a download type
func parseType(name string) (model.DownloadType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "audio", "":
		return model.DownloadAudioOnly, nil
	case "video":
		return model.DownloadVideoAudio, nil
	default:
		return model.DownloadAudioOnly, fmt.Errorf("unknown type %q, want audio or video", name)
	}
}
