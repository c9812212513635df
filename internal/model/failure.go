package model

import "fmt"

// FailureKind classifies why an attempt failed
type FailureKind string

const (
	FailureIdentifierResolution FailureKind = "IdentifierResolutionFailure"
	FailureStreamSelection      FailureKind = "StreamSelectionFailure"
	FailureTransfer             FailureKind = "TransferFailure"
	FailureCancelled            FailureKind = "Cancelled"
)

// Failure describes the reason an attempt ended in StateFailed
type Failure struct {
	Kind    FailureKind
	Message string
}

// String returns "<kind>: <message>", or just the kind when there is no message
func (f Failure) String() string {
	if f.Message == "" {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}
