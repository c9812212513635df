package download

import (
	"errors"

	"github.com/ytget/tubegrab/internal/model"
)

// ErrProgressUnavailable means the total size is not known yet at a chunk
// boundary. The fetch task skips the publish and keeps going.
var ErrProgressUnavailable = errors.New("progress unavailable: total size unknown")

// Fraction converts a byte count into a progress sample clamped to [0, 1]
func Fraction(received, total int64) (model.Progress, error) {
	if total <= 0 {
		return model.Progress{}, ErrProgressUnavailable
	}

	fraction := float64(received) / float64(total)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	return model.Progress{
		Fraction: fraction,
		Received: received,
		Total:    total,
	}, nil
}
