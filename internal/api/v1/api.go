// Package v1 implements the read-only JSON query API.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vomadrid/vomadrid/internal/catalog"
	"github.com/vomadrid/vomadrid/pkg/airtable"
)

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	log  *zap.Logger
}

// New creates a new v1 API server.
func New(deps ServerDeps, log *zap.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{deps: deps, log: log.Named("api")}, nil
}

// Routes registers the API routes. Mount it under /api/v1.
func (s *Server) Routes(r chi.Router) {
	r.Get("/movies", s.listMovies)
	r.Get("/movies/{id}", s.getMovie)
	r.Get("/cinemas", s.listCinemas)
	r.Get("/cinemas/{id}", s.getCinema)
	r.Get("/screenings", s.listScreenings)
	r.Get("/facets", s.getFacets)
	r.Get("/status", s.getStatus)
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeQueryError maps a catalog error to a response. Upstream failures
// are a bad gateway; anything else is ours.
func (s *Server) writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	if te, ok := airtable.IsTransport(err); ok {
		s.log.Warn("upstream request failed",
			zap.String("path", r.URL.Path),
			zap.Int("upstream_status", te.Status),
		)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Upstream data source unavailable")
		return
	}
	if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		// Client went away.
		return
	}
	s.log.Error("query failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.MovieFilter{
		Search:    q.Get("search"),
		Genre:     q.Get("genre"),
		Language:  q.Get("language"),
		AgeRating: q.Get("ageRating"),
	}

	movies, err := s.deps.Catalog.FilterMovies(r.Context(), f)
	if err != nil {
		s.writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(movies))
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.Catalog.GetMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeQueryError(w, r, err)
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) listCinemas(w http.ResponseWriter, r *http.Request) {
	cinemas, err := s.deps.Catalog.ListCinemas(r.Context())
	if err != nil {
		s.writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(cinemas))
}

func (s *Server) getCinema(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Catalog.GetCinema(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeQueryError(w, r, err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Cinema not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) listScreenings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.ScreeningFilter{
		MovieID:  q.Get("movieId"),
		CinemaID: q.Get("cinemaId"),
		Date:     q.Get("date"),
		Chain:    q.Get("chain"),
	}

	screenings, err := s.deps.Catalog.ListScreenings(r.Context(), f)
	if err != nil {
		s.writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(screenings))
}

func (s *Server) getFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := s.deps.Catalog.Facets(r.Context())
	if err != nil {
		s.writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, facets)
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{Status: "ok", Upstream: "unconfigured", Version: s.deps.Version}
	if s.deps.UpstreamConfigured {
		resp.Upstream = "configured"
	}
	writeJSON(w, http.StatusOK, resp)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
