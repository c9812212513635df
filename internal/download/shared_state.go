package download

import (
	"sync"

	"github.com/ytget/tubegrab/internal/model"
)

// Snapshot is one frame's view of the shared state. The two cells are read
// independently, so State and Progress may be one update apart.
type Snapshot struct {
	Attempt     string
	State       model.DownloadState
	Progress    model.Progress
	Failure     *model.Failure
	Destination string
}

type progressCell struct {
	attempt  string
	progress model.Progress
}

type lifecycleCell struct {
	attempt     string
	state       model.DownloadState
	failure     *model.Failure
	destination string
}

// SharedState holds the progress and lifecycle cells read by the display loop
// and written by the download goroutines. Each cell has its own lock, held only
// for a single read or assignment. Writes tagged with an attempt other than the
// current one are dropped.
type SharedState struct {
	progressMu sync.Mutex
	progress   progressCell

	lifecycleMu sync.Mutex
	lifecycle   lifecycleCell
}

// NewSharedState creates state in StateInitial
func NewSharedState() *SharedState {
	return &SharedState{
		lifecycle: lifecycleCell{state: model.StateInitial},
	}
}

// State returns the current lifecycle state
func (s *SharedState) State() model.DownloadState {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	return s.lifecycle.state
}

// Progress returns the latest progress sample
func (s *SharedState) Progress() model.Progress {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	return s.progress.progress
}

// Snapshot reads both cells, one after the other
func (s *SharedState) Snapshot() Snapshot {
	s.lifecycleMu.Lock()
	lc := s.lifecycle
	s.lifecycleMu.Unlock()

	snap := Snapshot{
		Attempt:     lc.attempt,
		State:       lc.state,
		Destination: lc.destination,
		Progress:    s.Progress(),
	}
	if lc.failure != nil {
		failure := *lc.failure
		snap.Failure = &failure
	}
	return snap
}

// SetProgress stores p if attempt is still the current attempt
func (s *SharedState) SetProgress(attempt string, p model.Progress) bool {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	if attempt == "" || s.progress.attempt != attempt {
		return false
	}
	s.progress.progress = p
	return true
}

// begin moves to StateDownloading for a new attempt. It fails while another
// attempt is downloading.
func (s *SharedState) begin(attempt, destination string) bool {
	s.lifecycleMu.Lock()
	if !s.lifecycle.state.CanTransition(model.StateDownloading) {
		s.lifecycleMu.Unlock()
		return false
	}
	s.lifecycle = lifecycleCell{
		attempt:     attempt,
		state:       model.StateDownloading,
		destination: destination,
	}
	s.lifecycleMu.Unlock()

	s.resetProgress(attempt)
	return true
}

// finish records the terminal state of attempt. Stale attempts are ignored.
func (s *SharedState) finish(attempt string, state model.DownloadState, failure *model.Failure) bool {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if s.lifecycle.attempt != attempt || !s.lifecycle.state.CanTransition(state) {
		return false
	}
	s.lifecycle.state = state
	s.lifecycle.failure = failure
	return true
}

// rearm returns to StateInitial unless a download is running
func (s *SharedState) rearm() bool {
	s.lifecycleMu.Lock()
	if s.lifecycle.state.IsActive() {
		s.lifecycleMu.Unlock()
		return false
	}
	s.lifecycle = lifecycleCell{state: model.StateInitial}
	s.lifecycleMu.Unlock()

	s.resetProgress("")
	return true
}

func (s *SharedState) resetProgress(attempt string) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.progress = progressCell{attempt: attempt}
}
