package chi

// ErrorCode is a machine-readable error identifier returned to API clients.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeInvalidParameter  ErrorCode = "invalid_parameter"
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeAlreadyExists     ErrorCode = "already_exists"
	ErrorCodeRevisionConflict  ErrorCode = "revision_conflict"
	ErrorCodeUnknownColor      ErrorCode = "unknown_color"
	ErrorCodeTooManyCandidates ErrorCode = "too_many_candidates"
	ErrorCodeSearchTimeout     ErrorCode = "search_timeout"
	ErrorCodeUnavailable       ErrorCode = "unavailable"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Floss is a palette entry.
type Floss struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Hex         string `json:"hex"`
}

// NearestRequest is the body of POST /nearest and POST /nearest/count.
// Zero blend size or limit fall back to the configured defaults.
type NearestRequest struct {
	Target       string   `json:"target"`
	Collection   string   `json:"collection,omitempty"`
	AllowedNames []string `json:"allowed_names,omitempty"`
	MaxBlendSize int      `json:"max_blend_size,omitempty"`
	ResultLimit  int      `json:"result_limit,omitempty"`
}

// Neighbor is one ranked blend.
type Neighbor struct {
	FlossNames []string `json:"floss_names"`
	Name       string   `json:"name"`
	Distance   float64  `json:"distance"`
}

// NeighborGroup holds the ranked blends of one size.
type NeighborGroup struct {
	BlendSize int        `json:"blend_size"`
	Neighbors []Neighbor `json:"neighbors"`
}

// NearestResponse is the answer to a nearest search.
type NearestResponse struct {
	ID     uint64          `json:"id"`
	Target string          `json:"target"`
	Groups []NeighborGroup `json:"groups"`
}

// CandidateCountResponse reports how many blends a query would score.
type CandidateCountResponse struct {
	Candidates uint64 `json:"candidates"`
	Limit      uint64 `json:"limit,omitempty"`
	Feasible   bool   `json:"feasible"`
}

// Collection is a stored floss collection.
type Collection struct {
	Name       string   `json:"name"`
	FlossNames []string `json:"floss_names"`
	CreatedAt  int64    `json:"created_at"`
	Revision   int      `json:"revision"`
}

// CollectionListResponse wraps GET /collections.
type CollectionListResponse struct {
	Items []Collection `json:"items"`
}

// CreateCollectionRequest is the body of POST /collections.
type CreateCollectionRequest struct {
	Name       string   `json:"name"`
	FlossNames []string `json:"floss_names"`
}

// UpdateCollectionRequest is the body of PUT /collections/{name}.
type UpdateCollectionRequest struct {
	FlossNames []string `json:"floss_names"`
}

// RenameCollectionRequest is the body of POST /collections/{name}/rename.
type RenameCollectionRequest struct {
	Name string `json:"name"`
}

// ImportCollectionRequest is the body of POST /collections/import.
// FlossNames is the shared "a+b+c" form.
type ImportCollectionRequest struct {
	Name       string `json:"name"`
	FlossNames string `json:"floss_names"`
}

// ExportCollectionResponse is the shared form of a collection.
type ExportCollectionResponse struct {
	Name       string `json:"name"`
	FlossNames string `json:"floss_names"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
