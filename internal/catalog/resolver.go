package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Resolve attaches each screening's movie and cinema. Every distinct
// referenced ID is fetched once; movies and cinemas are fetched
// concurrently. Empty or dangling references leave the field nil and the
// screening is kept. The input slice is not modified.
func (c *Catalog) Resolve(ctx context.Context, screenings []Screening) ([]Screening, error) {
	movieIDs := distinctIDs(screenings, func(s Screening) string { return s.MovieID })
	cinemaIDs := distinctIDs(screenings, func(s Screening) string { return s.CinemaID })

	movies := make([]*Movie, len(movieIDs))
	cinemas := make([]*Cinema, len(cinemaIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fanOut(gctx, movieIDs, c.limit, func(ctx context.Context, i int, id string) error {
			m, err := c.GetMovie(ctx, id)
			movies[i] = m
			return err
		})
	})
	g.Go(func() error {
		return fanOut(gctx, cinemaIDs, c.limit, func(ctx context.Context, i int, id string) error {
			cin, err := c.GetCinema(ctx, id)
			cinemas[i] = cin
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.metrics.ObserveResolved("movie", len(movieIDs))
	c.metrics.ObserveResolved("cinema", len(cinemaIDs))

	movieByID := make(map[string]*Movie, len(movies))
	for _, m := range movies {
		if m != nil {
			movieByID[m.ID] = m
		}
	}
	cinemaByID := make(map[string]*Cinema, len(cinemas))
	for _, cin := range cinemas {
		if cin != nil {
			cinemaByID[cin.ID] = cin
		}
	}

	out := make([]Screening, len(screenings))
	dangling := 0
	for i, s := range screenings {
		s.Movie = movieByID[s.MovieID]
		s.Cinema = cinemaByID[s.CinemaID]
		if (s.MovieID != "" && s.Movie == nil) || (s.CinemaID != "" && s.Cinema == nil) {
			dangling++
		}
		out[i] = s
	}
	if dangling > 0 {
		c.log.Debug("screenings with unresolved references", zap.Int("count", dangling))
	}
	return out, nil
}

// distinctIDs returns the non-empty IDs picked from screenings, in first-seen order.
func distinctIDs(screenings []Screening, pick func(Screening) string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, s := range screenings {
		id := pick(s)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// fanOut runs fn for every id concurrently, at most limit at a time
// (limit <= 0 means no bound), and returns the first error.
func fanOut(ctx context.Context, ids []string, limit int, fn func(ctx context.Context, i int, id string) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, id := range ids {
		g.Go(func() error {
			return fn(gctx, i, id)
		})
	}
	return g.Wait()
}
