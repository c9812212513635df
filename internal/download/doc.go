package download

// Package download implements the download pipeline: a Controller owning the
// lifecycle state machine, a fetch goroutine that drives a fetch.Fetcher and
// publishes progress fractions, and a relay goroutine that mirrors them into
// SharedState and asks the host display loop to redraw.
