package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidSchema signals an invalid resource definition (bad name, malformed record).
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrRevisionConflict signals an optimistic locking conflict.
	ErrRevisionConflict = errors.New("revision conflict")

	// ErrUnknownColorName signals a floss name that does not resolve in the palette.
	ErrUnknownColorName = errors.New("unknown color name")
	// ErrInvalidParameter signals a non-positive blend size or result limit.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrTooManyCandidates signals a search rejected by the caller-side feasibility gate.
	ErrTooManyCandidates = errors.New("too many candidates")
	// ErrProtocolMismatch signals a search response correlated to no pending request.
	ErrProtocolMismatch = errors.New("protocol mismatch")
	// ErrChannelClosed signals a submission to a stopped search channel.
	ErrChannelClosed = errors.New("search channel closed")
)

// UnknownColorError wraps ErrUnknownColorName with the offending name.
type UnknownColorError struct {
	Name string
}

func (e *UnknownColorError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownColorName.Error(), e.Name)
}

func (e *UnknownColorError) Unwrap() error { return ErrUnknownColorName }

// NewUnknownColor creates an unknown color name error.
func NewUnknownColor(name string) error {
	return &UnknownColorError{Name: name}
}

// CandidateLimitError wraps ErrTooManyCandidates with the computed and allowed counts.
type CandidateLimitError struct {
	Candidates uint64
	Limit      uint64
}

func (e *CandidateLimitError) Error() string {
	return fmt.Sprintf(
		"%s: %d combinations to search through is greater than limit of %d; "+
			"choose a smaller collection or reduce the blend size",
		ErrTooManyCandidates.Error(), e.Candidates, e.Limit,
	)
}

func (e *CandidateLimitError) Unwrap() error { return ErrTooManyCandidates }

// RevisionConflictError wraps ErrRevisionConflict with the current resource revision.
type RevisionConflictError struct {
	CurrentRevision int
}

func (e *RevisionConflictError) Error() string {
	return fmt.Sprintf("%s: current revision is %d", ErrRevisionConflict.Error(), e.CurrentRevision)
}

func (e *RevisionConflictError) Unwrap() error { return ErrRevisionConflict }

// NewRevisionConflict creates a revision conflict error.
func NewRevisionConflict(currentRevision int) error {
	return &RevisionConflictError{CurrentRevision: currentRevision}
}
