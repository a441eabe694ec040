package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/flossdex/internal/domain"
)

// Defaults used by outer surfaces when a parameter is omitted.
const (
	DefaultMaxBlendSize = 2
	DefaultResultLimit  = 12
)

// Request is a validated nearest-blend search. The ID is assigned by the search
// channel at submission time; zero means unassigned.
type Request struct {
	id           uint64
	targetName   string
	allowedNames []string
	maxBlendSize int
	resultLimit  int
}

// New validates search parameters. allowedNames == nil means the whole palette;
// an empty non-nil slice restricts the search to nothing.
func New(targetName string, allowedNames []string, maxBlendSize, resultLimit int) (Request, error) {
	targetName = strings.TrimSpace(targetName)
	if targetName == "" {
		return Request{}, fmt.Errorf("%w: target color name is required", domain.ErrInvalidParameter)
	}
	if maxBlendSize < 1 {
		return Request{}, fmt.Errorf("%w: max blend size must be at least 1, got %d",
			domain.ErrInvalidParameter, maxBlendSize)
	}
	if resultLimit < 1 {
		return Request{}, fmt.Errorf("%w: result limit must be at least 1, got %d",
			domain.ErrInvalidParameter, resultLimit)
	}

	var allowed []string
	if allowedNames != nil {
		allowed = make([]string, len(allowedNames))
		copy(allowed, allowedNames)
	}

	return Request{
		targetName:   targetName,
		allowedNames: allowed,
		maxBlendSize: maxBlendSize,
		resultLimit:  resultLimit,
	}, nil
}

// WithID returns a copy tagged with the correlation ID.
func (r Request) WithID(id uint64) Request {
	r.id = id
	return r
}

// ID returns the correlation ID.
func (r *Request) ID() uint64 { return r.id }

// TargetName returns the name of the floss to match.
func (r *Request) TargetName() string { return r.targetName }

// AllowedNames returns the candidate restriction (nil = whole palette).
func (r *Request) AllowedNames() []string { return r.allowedNames }

// Restricted reports whether the candidate palette is restricted.
func (r *Request) Restricted() bool { return r.allowedNames != nil }

// MaxBlendSize returns the largest blend size to consider.
func (r *Request) MaxBlendSize() int { return r.maxBlendSize }

// ResultLimit returns the maximum neighbors per blend size.
func (r *Request) ResultLimit() int { return r.resultLimit }
