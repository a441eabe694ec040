package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	chirouter "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/flossdex/internal/domain"
	domcol "github.com/kailas-cloud/flossdex/internal/domain/collection"
	"github.com/kailas-cloud/flossdex/internal/domain/floss"
	"github.com/kailas-cloud/flossdex/internal/domain/search/request"
	"github.com/kailas-cloud/flossdex/internal/domain/search/result"
	collectionuc "github.com/kailas-cloud/flossdex/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/flossdex/internal/usecase/health"
	nearestuc "github.com/kailas-cloud/flossdex/internal/usecase/nearest"
)

const (
	maxBodyBytes = 1 << 20

	// statusClientClosedRequest is reported when the caller went away mid-search.
	statusClientClosedRequest = 499
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// SearchDefaults fills omitted nearest parameters and caps the result limit.
type SearchDefaults struct {
	MaxBlendSize   int
	ResultLimit    int
	MaxResultLimit int
	MaxCandidates  uint64
}

// Server serves the flossdex HTTP API.
type Server struct {
	palette       *floss.Palette
	collections   *collectionuc.Service
	nearest       *nearestuc.Service
	health        *healthuc.Service
	defaults      SearchDefaults
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	palette *floss.Palette,
	collections *collectionuc.Service,
	nearest *nearestuc.Service,
	health *healthuc.Service,
	defaults SearchDefaults,
	logger *zap.Logger,
) *Server {
	if defaults.MaxBlendSize <= 0 {
		defaults.MaxBlendSize = request.DefaultMaxBlendSize
	}
	if defaults.ResultLimit <= 0 {
		defaults.ResultLimit = request.DefaultResultLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		palette:     palette,
		collections: collections,
		nearest:     nearest,
		health:      health,
		defaults:    defaults,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		revisionConflictHandler,
		candidateLimitHandler,
		unknownColorHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, ErrorCodeAlreadyExists),
		sentinelHandler(domain.ErrInvalidSchema, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidParameter, http.StatusBadRequest, ErrorCodeInvalidParameter),
		sentinelHandler(domain.ErrChannelClosed, http.StatusServiceUnavailable, ErrorCodeUnavailable),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, ErrorCodeSearchTimeout),
		clientGoneHandler,
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/flosses", s.ListFlosses)
	r.Get("/flosses/{name}", s.GetFloss)

	r.Post("/nearest", s.Nearest)
	r.Post("/nearest/count", s.CountCandidates)

	r.Route("/collections", func(r chirouter.Router) {
		r.Get("/", s.ListCollections)
		r.Post("/", s.CreateCollection)
		r.Post("/import", s.ImportCollection)
		r.Route("/{name}", func(r chirouter.Router) {
			r.Get("/", s.GetCollection)
			r.Put("/", s.UpdateCollection)
			r.Delete("/", s.DeleteCollection)
			r.Post("/rename", s.RenameCollection)
			r.Get("/export", s.ExportCollection)
			r.Put("/flosses/{floss}", s.AddFloss)
			r.Delete("/flosses/{floss}", s.RemoveFloss)
		})
	})
}

// ListFlosses handles GET /flosses?q=.
func (s *Server) ListFlosses(w http.ResponseWriter, r *http.Request) {
	flosses := s.palette.Filter(r.URL.Query().Get("q"))

	items := make([]Floss, len(flosses))
	for i, f := range flosses {
		items[i] = flossToDTO(f)
	}
	writeJSON(w, http.StatusOK, items)
}

// GetFloss handles GET /flosses/{name}.
func (s *Server) GetFloss(w http.ResponseWriter, r *http.Request) {
	f, err := s.palette.Lookup(pathParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flossToDTO(f))
}

// Nearest handles POST /nearest.
func (s *Server) Nearest(w http.ResponseWriter, r *http.Request) {
	var req NearestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.nearest.Find(r.Context(), s.queryFrom(req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, responseToDTO(&resp))
}

// CountCandidates handles POST /nearest/count.
func (s *Server) CountCandidates(w http.ResponseWriter, r *http.Request) {
	var req NearestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	count, err := s.nearest.CandidateCount(r.Context(), s.queryFrom(req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CandidateCountResponse{
		Candidates: count,
		Limit:      s.defaults.MaxCandidates,
		Feasible:   s.defaults.MaxCandidates == 0 || count <= s.defaults.MaxCandidates,
	})
}

// ListCollections handles GET /collections.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := s.collections.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]Collection, len(cols))
	for i, c := range cols {
		items[i] = collectionToDTO(c)
	}
	writeJSON(w, http.StatusOK, CollectionListResponse{Items: items})
}

// CreateCollection handles POST /collections.
func (s *Server) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "Collection name is required")
		return
	}

	col, err := s.collections.Create(r.Context(), req.Name, req.FlossNames)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeCollection(w, http.StatusCreated, col)
}

// ImportCollection handles POST /collections/import.
func (s *Server) ImportCollection(w http.ResponseWriter, r *http.Request) {
	var req ImportCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	col, err := s.collections.Import(r.Context(), req.Name, req.FlossNames)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeCollection(w, http.StatusCreated, col)
}

// GetCollection handles GET /collections/{name}.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	col, err := s.collections.Get(r.Context(), pathParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeCollection(w, http.StatusOK, col)
}

// UpdateCollection handles PUT /collections/{name}. An If-Match header carrying the
// ETag of a previous read rejects the write when the collection changed since.
func (s *Server) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	expected, ok := parseIfMatch(r.Header.Get("If-Match"))
	if !ok {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "If-Match must be a collection revision")
		return
	}

	var req UpdateCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	col, err := s.collections.SetFlosses(r.Context(), pathParam(r, "name"), req.FlossNames, expected)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeCollection(w, http.StatusOK, col)
}

// DeleteCollection handles DELETE /collections/{name}.
func (s *Server) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	if err := s.collections.Delete(r.Context(), pathParam(r, "name")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameCollection handles POST /collections/{name}/rename.
func (s *Server) RenameCollection(w http.ResponseWriter, r *http.Request) {
	var req RenameCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	col, err := s.collections.Rename(r.Context(), pathParam(r, "name"), req.Name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeCollection(w, http.StatusOK, col)
}

// ExportCollection handles GET /collections/{name}/export.
func (s *Server) ExportCollection(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	shared, err := s.collections.Export(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ExportCollectionResponse{Name: name, FlossNames: shared})
}

// AddFloss handles PUT /collections/{name}/flosses/{floss}.
func (s *Server) AddFloss(w http.ResponseWriter, r *http.Request) {
	col, err := s.collections.AddFloss(r.Context(), pathParam(r, "name"), pathParam(r, "floss"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeCollection(w, http.StatusOK, col)
}

// RemoveFloss handles DELETE /collections/{name}/flosses/{floss}.
func (s *Server) RemoveFloss(w http.ResponseWriter, r *http.Request) {
	col, err := s.collections.RemoveFloss(r.Context(), pathParam(r, "name"), pathParam(r, "floss"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeCollection(w, http.StatusOK, col)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

func (s *Server) queryFrom(req NearestRequest) nearestuc.Query {
	q := nearestuc.Query{
		Target:       req.Target,
		Collection:   req.Collection,
		AllowedNames: req.AllowedNames,
		MaxBlendSize: req.MaxBlendSize,
		ResultLimit:  req.ResultLimit,
	}
	if q.MaxBlendSize == 0 {
		q.MaxBlendSize = s.defaults.MaxBlendSize
	}
	if q.ResultLimit == 0 {
		q.ResultLimit = s.defaults.ResultLimit
	}
	if s.defaults.MaxResultLimit > 0 && q.ResultLimit > s.defaults.MaxResultLimit {
		q.ResultLimit = s.defaults.MaxResultLimit
	}
	return q
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func pathParam(r *http.Request, key string) string {
	raw := chirouter.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// parseIfMatch accepts an empty header, "*", or a revision with or without quotes.
func parseIfMatch(h string) (int, bool) {
	h = strings.TrimSpace(h)
	if h == "" || h == "*" {
		return 0, true
	}
	h = strings.TrimPrefix(h, "W/")
	if unq, err := strconv.Unquote(h); err == nil {
		h = unq
	}
	rev, err := strconv.Atoi(h)
	if err != nil || rev < 1 {
		return 0, false
	}
	return rev, true
}

func writeCollection(w http.ResponseWriter, status int, col domcol.Collection) {
	w.Header().Set("ETag", strconv.Quote(strconv.Itoa(col.Revision())))
	writeJSON(w, status, collectionToDTO(col))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrRevisionConflict,
		domain.ErrInvalidSchema,
		domain.ErrInvalidParameter,
		domain.ErrUnknownColorName,
		domain.ErrTooManyCandidates,
		domain.ErrChannelClosed,
		context.DeadlineExceeded,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// revisionConflictHandler handles ErrRevisionConflict with ETag header and extra fields.
func revisionConflictHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrRevisionConflict) {
		return false
	}
	var rce *domain.RevisionConflictError
	if errors.As(err, &rce) {
		w.Header().Set("ETag", strconv.Quote(strconv.Itoa(rce.CurrentRevision)))
		writeJSON(w, http.StatusConflict, map[string]any{
			"code":             ErrorCodeRevisionConflict,
			"message":          msg,
			"current_revision": rce.CurrentRevision,
		})
		return true
	}
	writeError(w, http.StatusConflict, ErrorCodeRevisionConflict, msg)
	return true
}

// candidateLimitHandler reports the rejected search size so the caller can narrow it.
func candidateLimitHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrTooManyCandidates) {
		return false
	}
	var cle *domain.CandidateLimitError
	if errors.As(err, &cle) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":       ErrorCodeTooManyCandidates,
			"message":    cle.Error(),
			"candidates": cle.Candidates,
			"limit":      cle.Limit,
		})
		return true
	}
	writeError(w, http.StatusUnprocessableEntity, ErrorCodeTooManyCandidates, msg)
	return true
}

// unknownColorHandler names the floss that failed to resolve.
func unknownColorHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrUnknownColorName) {
		return false
	}
	var uce *domain.UnknownColorError
	if errors.As(err, &uce) {
		msg = uce.Error()
	}
	writeError(w, http.StatusUnprocessableEntity, ErrorCodeUnknownColor, msg)
	return true
}

func clientGoneHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, context.Canceled) {
		return false
	}
	w.WriteHeader(statusClientClosedRequest)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		log = log.With(zap.String("request_id", reqID))
	}
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func flossToDTO(f floss.Floss) Floss {
	return Floss{Name: f.Name(), Description: f.Description(), Hex: f.Hex()}
}

func collectionToDTO(c domcol.Collection) Collection {
	return Collection{
		Name:       c.Name(),
		FlossNames: c.FlossNames(),
		CreatedAt:  c.CreatedAt(),
		Revision:   c.Revision(),
	}
}

func responseToDTO(resp *result.Response) NearestResponse {
	groups := make([]NeighborGroup, 0, len(resp.Groups()))
	for _, g := range resp.Groups() {
		neighbors := make([]Neighbor, 0, len(g.Neighbors()))
		for _, n := range g.Neighbors() {
			neighbors = append(neighbors, Neighbor{
				FlossNames: n.FlossNames(),
				Name:       strings.Join(n.FlossNames(), floss.NameSeparator),
				Distance:   n.Distance(),
			})
		}
		groups = append(groups, NeighborGroup{BlendSize: g.BlendSize(), Neighbors: neighbors})
	}
	return NearestResponse{ID: resp.ID(), Target: resp.TargetName(), Groups: groups}
}
