package v1

import (
	"context"
	"errors"

	"github.com/vomadrid/vomadrid/internal/catalog"
)

//go:generate mockgen -destination=mocks/mock_catalog.go -package=mocks github.com/vomadrid/vomadrid/internal/api/v1 Catalog

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Catalog answers the listing queries. *catalog.Catalog implements it.
type Catalog interface {
	FilterMovies(ctx context.Context, f catalog.MovieFilter) ([]catalog.Movie, error)
	GetMovie(ctx context.Context, id string) (*catalog.Movie, error)
	ListCinemas(ctx context.Context) ([]catalog.Cinema, error)
	GetCinema(ctx context.Context, id string) (*catalog.Cinema, error)
	ListScreenings(ctx context.Context, f catalog.ScreeningFilter) ([]catalog.Screening, error)
	Facets(ctx context.Context) (catalog.Facets, error)
}

// ServerDeps contains all dependencies for the API server.
type ServerDeps struct {
	// Required
	Catalog Catalog

	// UpstreamConfigured reports whether upstream credentials are set. It
	// only feeds the status endpoint.
	UpstreamConfigured bool
	Version            string
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Catalog == nil {
		return errors.Join(ErrMissingDependency, errors.New("catalog is required"))
	}
	return nil
}
