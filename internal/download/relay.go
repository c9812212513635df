package download

import (
	"context"

	"github.com/ytget/tubegrab/internal/model"
	"github.com/ytget/tubegrab/internal/progress"
)

// relay copies every observed sample into the shared state and requests a
// redraw. It returns when the channel is closed, after one last redraw so the
// terminal state gets painted.
func relay(in *progress.Channel[model.Progress], attempt string, state *SharedState, redraw RedrawFunc) {
	defer redraw()

	for {
		p, ok := in.Wait(context.Background())
		if !ok {
			return
		}
		if state.SetProgress(attempt, p) {
			redraw()
		}
	}
}
