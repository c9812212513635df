package fetch

// Package fetch adapts media extractors to a single Fetcher contract: resolve a
// video identifier, select a stream for the requested download type, and write it
// to the destination while reporting (received, total) bytes per chunk. Two engines
// are available: github.com/kkdai/youtube/v2 (default) and github.com/ytget/ytdlp/v2.
