package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vomadrid/vomadrid/internal/metrics"
	"github.com/vomadrid/vomadrid/pkg/airtable"
)

// Tables names the upstream table of each entity kind.
type Tables struct {
	Movies     string
	Cinemas    string
	Screenings string
}

// DefaultTables returns the table names used when none are configured.
func DefaultTables() Tables {
	return Tables{Movies: "movies", Cinemas: "cinemas", Screenings: "screenings"}
}

// Config configures a Catalog.
type Config struct {
	Tables Tables
	Schema Schema

	// ResolveConcurrency bounds the per-kind fan-out of single-record
	// fetches while resolving screenings. 0 means unbounded.
	ResolveConcurrency int
}

// Catalog answers listing queries over movies, cinemas and screenings.
type Catalog struct {
	fetcher *Fetcher
	tables  Tables
	schema  Schema
	limit   int
	log     *zap.Logger
	metrics *metrics.Metrics
}

// New creates a catalog. Zero-valued tables fall back to DefaultTables.
func New(f *Fetcher, cfg Config, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Schema == (Schema{}) {
		cfg.Schema = DefaultSchema()
	}
	def := DefaultTables()
	if cfg.Tables.Movies == "" {
		cfg.Tables.Movies = def.Movies
	}
	if cfg.Tables.Cinemas == "" {
		cfg.Tables.Cinemas = def.Cinemas
	}
	if cfg.Tables.Screenings == "" {
		cfg.Tables.Screenings = def.Screenings
	}
	return &Catalog{
		fetcher: f,
		tables:  cfg.Tables,
		schema:  cfg.Schema,
		limit:   cfg.ResolveConcurrency,
		log:     log,
		metrics: f.metrics,
	}
}

func activeFormula(field string) string {
	return fmt.Sprintf("{%s} = TRUE()", field)
}

// ListMovies returns active movies ordered by their sort order.
func (c *Catalog) ListMovies(ctx context.Context) ([]Movie, error) {
	recs, err := c.fetcher.FetchAll(ctx, c.tables.Movies, airtable.Query{
		FilterByFormula: activeFormula(c.schema.Movie.IsActive),
		Sort:            []airtable.Sort{{Field: c.schema.Movie.SortOrder, Direction: airtable.Asc}},
	}, "movies:active")
	if err != nil {
		return nil, err
	}
	movies := make([]Movie, len(recs))
	for i, r := range recs {
		movies[i] = c.schema.MapMovie(r)
	}
	return movies, nil
}

// GetMovie returns the movie with the given ID, or nil if there is none.
// Unlike ListMovies it does not skip inactive movies, so detail pages keep
// working for films that just left the listings.
func (c *Catalog) GetMovie(ctx context.Context, id string) (*Movie, error) {
	rec, err := c.fetcher.FetchOne(ctx, c.tables.Movies, id, "movie:"+id)
	if err != nil || rec == nil {
		return nil, err
	}
	m := c.schema.MapMovie(*rec)
	return &m, nil
}

// FilterMovies returns the active movies matching f, in listing order.
func (c *Catalog) FilterMovies(ctx context.Context, f MovieFilter) ([]Movie, error) {
	movies, err := c.ListMovies(ctx)
	if err != nil || f.IsZero() {
		return movies, err
	}
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// ListCinemas returns active cinemas ordered by name.
func (c *Catalog) ListCinemas(ctx context.Context) ([]Cinema, error) {
	recs, err := c.fetcher.FetchAll(ctx, c.tables.Cinemas, airtable.Query{
		FilterByFormula: activeFormula(c.schema.Cinema.IsActive),
		Sort:            []airtable.Sort{{Field: c.schema.Cinema.Name, Direction: airtable.Asc}},
	}, "cinemas:active")
	if err != nil {
		return nil, err
	}
	cinemas := make([]Cinema, len(recs))
	for i, r := range recs {
		cinemas[i] = c.schema.MapCinema(r)
	}
	return cinemas, nil
}

// GetCinema returns the cinema with the given ID, or nil if there is none.
// Inactive cinemas are returned too.
func (c *Catalog) GetCinema(ctx context.Context, id string) (*Cinema, error) {
	rec, err := c.fetcher.FetchOne(ctx, c.tables.Cinemas, id, "cinema:"+id)
	if err != nil || rec == nil {
		return nil, err
	}
	cin := c.schema.MapCinema(*rec)
	return &cin, nil
}

// screeningsFormula keeps active screenings dated from yesterday on; the
// extra day absorbs timezone skew between the upstream and the viewer.
func (c *Catalog) screeningsFormula() string {
	sf := c.schema.Screening
	return fmt.Sprintf("AND(%s, IS_AFTER({%s}, DATEADD(TODAY(), -1, 'days')))",
		activeFormula(sf.IsActive), sf.Date)
}

// ListScreenings returns upcoming active screenings ordered by date, with
// their movie and cinema resolved.
//
// Linked-record IDs cannot be matched by the upstream formula language, so
// movie and cinema filters run here, before resolution, to keep the number
// of lookups down. Chain depends on the resolved cinema and runs after it;
// the date prefix runs last.
func (c *Catalog) ListScreenings(ctx context.Context, f ScreeningFilter) ([]Screening, error) {
	recs, err := c.fetcher.FetchAll(ctx, c.tables.Screenings, airtable.Query{
		FilterByFormula: c.screeningsFormula(),
		Sort:            []airtable.Sort{{Field: c.schema.Screening.Date, Direction: airtable.Asc}},
	}, f.CacheKey())
	if err != nil {
		return nil, err
	}

	screenings := make([]Screening, len(recs))
	for i, r := range recs {
		screenings[i] = c.schema.MapScreening(r)
	}

	if f.MovieID != "" {
		screenings = filterScreenings(screenings, func(s Screening) bool { return s.MovieID == f.MovieID })
	}
	if f.CinemaID != "" {
		screenings = filterScreenings(screenings, func(s Screening) bool { return s.CinemaID == f.CinemaID })
	}

	screenings, err = c.Resolve(ctx, screenings)
	if err != nil {
		return nil, err
	}

	if f.Chain != "" {
		screenings = filterScreenings(screenings, func(s Screening) bool {
			return s.Cinema != nil && s.Cinema.Chain == f.Chain
		})
	}
	if f.Date != "" {
		screenings = filterScreenings(screenings, func(s Screening) bool {
			return strings.HasPrefix(s.Date, f.Date)
		})
	}
	return screenings, nil
}

// Facets returns the distinct genres, languages, age ratings and chains of
// the active listings.
func (c *Catalog) Facets(ctx context.Context) (Facets, error) {
	movies, err := c.ListMovies(ctx)
	if err != nil {
		return Facets{}, err
	}
	cinemas, err := c.ListCinemas(ctx)
	if err != nil {
		return Facets{}, err
	}
	return buildFacets(movies, cinemas), nil
}
