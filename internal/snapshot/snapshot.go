// Package snapshot materializes the catalog listings for offline consumers,
// as JSON files or a SQLite database.
package snapshot

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vomadrid/vomadrid/internal/catalog"
)

// Source is the part of the catalog a snapshot reads.
type Source interface {
	ListMovies(ctx context.Context) ([]catalog.Movie, error)
	ListCinemas(ctx context.Context) ([]catalog.Cinema, error)
	ListScreenings(ctx context.Context, f catalog.ScreeningFilter) ([]catalog.Screening, error)
}

// Snapshot is a point-in-time copy of the active listings.
type Snapshot struct {
	GeneratedAt time.Time
	Movies      []catalog.Movie
	Cinemas     []catalog.Cinema
	Screenings  []catalog.Screening
}

// Build reads all three listings under the same rules as the query API,
// with screenings unfiltered and resolved.
func Build(ctx context.Context, src Source) (*Snapshot, error) {
	s := &Snapshot{GeneratedAt: time.Now().UTC()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		s.Movies, err = src.ListMovies(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		s.Cinemas, err = src.ListCinemas(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		s.Screenings, err = src.ListScreenings(ctx, catalog.ScreeningFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}
