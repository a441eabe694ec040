package flossdex

import "github.com/kailas-cloud/flossdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrAlreadyExists     = domain.ErrAlreadyExists
	ErrInvalidSchema     = domain.ErrInvalidSchema
	ErrRevisionConflict  = domain.ErrRevisionConflict
	ErrUnknownColorName  = domain.ErrUnknownColorName
	ErrInvalidParameter  = domain.ErrInvalidParameter
	ErrTooManyCandidates = domain.ErrTooManyCandidates
	ErrClosed            = domain.ErrChannelClosed
)

// CandidateLimitError is returned (wrapping ErrTooManyCandidates) when a search
// would score more blends than the configured ceiling.
type CandidateLimitError = domain.CandidateLimitError

// UnknownColorError is returned (wrapping ErrUnknownColorName) with the name that
// did not resolve.
type UnknownColorError = domain.UnknownColorError
