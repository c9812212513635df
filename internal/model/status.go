package model

// DownloadState represents the lifecycle of a single download attempt
type DownloadState string

const (
	// StateInitial means no attempt is in progress and the inputs are editable
	StateInitial DownloadState = "Initial"

	// StateDownloading means an attempt is transferring data
	StateDownloading DownloadState = "Downloading"

	// StateDone means the last attempt finished successfully
	StateDone DownloadState = "Done"

	// StateFailed means the last attempt ended with an error or was cancelled
	StateFailed DownloadState = "Failed"
)

// String returns the string representation of DownloadState
func (s DownloadState) String() string {
	return string(s)
}

// IsActive returns true while a transfer is running
func (s DownloadState) IsActive() bool {
	return s == StateDownloading
}

// IsTerminal returns true if the state ends an attempt (done or failed)
func (s DownloadState) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether the state machine allows moving from s to next.
// Any non-active state may be re-armed to Initial or start a new attempt.
func (s DownloadState) CanTransition(next DownloadState) bool {
	switch s {
	case StateDownloading:
		return next == StateDone || next == StateFailed
	case StateInitial, StateDone, StateFailed:
		return next == StateInitial || next == StateDownloading
	default:
		return false
	}
}
