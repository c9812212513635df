package fetch

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a Fetcher matches exactly one of these
// with errors.Is, except context cancellation which is returned as ctx.Err().
var (
	ErrIdentifierResolution = errors.New("identifier resolution failed")
	ErrStreamSelection      = errors.New("no matching stream")
	ErrTransfer             = errors.New("transfer failed")
)

// Error wraps an underlying engine error with its kind and the failed operation
type Error struct {
	Kind error
	Op   string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying engine error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func resolutionError(op string, err error) error {
	return &Error{Kind: ErrIdentifierResolution, Op: op, Err: err}
}

func selectionError(op string, err error) error {
	return &Error{Kind: ErrStreamSelection, Op: op, Err: err}
}

func transferError(op string, err error) error {
	return &Error{Kind: ErrTransfer, Op: op, Err: err}
}
