package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vomadrid/vomadrid/internal/catalog"
)

type stubSource struct {
	movies     []catalog.Movie
	cinemas    []catalog.Cinema
	screenings []catalog.Screening
	err        error
	filters    []catalog.ScreeningFilter
}

func (s *stubSource) ListMovies(context.Context) ([]catalog.Movie, error) {
	return s.movies, s.err
}

func (s *stubSource) ListCinemas(context.Context) ([]catalog.Cinema, error) {
	return s.cinemas, nil
}

func (s *stubSource) ListScreenings(_ context.Context, f catalog.ScreeningFilter) ([]catalog.Screening, error) {
	s.filters = append(s.filters, f)
	return s.screenings, nil
}

func sampleSource() *stubSource {
	m1 := catalog.Movie{ID: "m1", Title: "Cerrar los ojos", Rating: 4, Genres: []string{"Drama"}, Runtime: "2h 49min", IsActive: true, SortOrder: 1}
	m2 := catalog.Movie{ID: "m2", Title: "Amélie", Genres: []string{}, IsActive: true, SortOrder: 999}
	c1 := catalog.Cinema{ID: "c1", Name: "Golem", Chain: "Golem", City: "Madrid", IsActive: true}
	return &stubSource{
		movies:  []catalog.Movie{m1, m2},
		cinemas: []catalog.Cinema{c1},
		screenings: []catalog.Screening{
			{ID: "s1", ScreeningID: 7, MovieID: "m1", CinemaID: "c1", Date: "2024-06-02T18:00:00.000Z", IsActive: true, Movie: &m1, Cinema: &c1},
			{ID: "s2", ScreeningID: 8, MovieID: "mGone", CinemaID: "c1", Date: "2024-06-03", IsActive: true, Cinema: &c1},
		},
	}
}

func TestBuild(t *testing.T) {
	src := sampleSource()

	s, err := Build(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, s.Movies, 2)
	assert.Len(t, s.Cinemas, 1)
	assert.Len(t, s.Screenings, 2)
	assert.False(t, s.GeneratedAt.IsZero())
	assert.Equal(t, []catalog.ScreeningFilter{{}}, src.filters, "screenings are listed unfiltered")
}

func TestBuild_Error(t *testing.T) {
	src := sampleSource()
	src.err = errors.New("upstream down")

	_, err := Build(context.Background(), src)
	assert.EqualError(t, err, "upstream down")
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	src := sampleSource()
	s, err := Build(context.Background(), src)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "public", "data")
	require.NoError(t, WriteJSON(dir, s))

	got, err := ReadJSON(dir)
	require.NoError(t, err)
	if diff := cmp.Diff(s.Movies, got.Movies); diff != "" {
		t.Errorf("movies mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Cinemas, got.Cinemas); diff != "" {
		t.Errorf("cinemas mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Screenings, got.Screenings); diff != "" {
		t.Errorf("screenings mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{MoviesFile, CinemasFile, ScreeningsFile}, names, "no temporary files left behind")
}

func TestWriteJSON_Format(t *testing.T) {
	dir := t.TempDir()
	s := &Snapshot{
		Movies: []catalog.Movie{{ID: "m1", Title: "Amélie", Genres: []string{}, SortOrder: 999}},
	}
	require.NoError(t, WriteJSON(dir, s))

	data, err := os.ReadFile(filepath.Join(dir, MoviesFile))
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"id\": \"m1\","), "2-space indent, got:\n%s", text)
	assert.Contains(t, text, `"originalTitle": ""`)
	assert.Contains(t, text, `"genres": []`)
	assert.True(t, strings.HasSuffix(text, "]\n"))

	empty, err := os.ReadFile(filepath.Join(dir, ScreeningsFile))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(empty), "empty listings are arrays, not null")
}

func TestWriteJSON_ScreeningEmbedsResolvedRecords(t *testing.T) {
	dir := t.TempDir()
	s, err := Build(context.Background(), sampleSource())
	require.NoError(t, err)
	require.NoError(t, WriteJSON(dir, s))

	data, err := os.ReadFile(filepath.Join(dir, ScreeningsFile))
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Contains(t, raw[0], "movie")
	assert.Contains(t, raw[0], "cinema")
	assert.NotContains(t, raw[1], "movie", "unresolved movie is omitted")
	assert.Equal(t, "mGone", raw[1]["movieId"])
}

func TestReadJSON_Missing(t *testing.T) {
	_, err := ReadJSON(t.TempDir())
	assert.Error(t, err)
}

func openTestWriter(t *testing.T) (*SQLiteWriter, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.db")
	w, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, w.db
}

func TestSQLiteWriter_Write(t *testing.T) {
	w, db := openTestWriter(t)
	s, err := Build(context.Background(), sampleSource())
	require.NoError(t, err)
	s.GeneratedAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, w.Write(context.Background(), s))

	var title, genres string
	var rating int
	var active bool
	err = db.QueryRow(`SELECT title, rating, genres, is_active FROM movies WHERE id = 'm1'`).Scan(&title, &rating, &genres, &active)
	require.NoError(t, err)
	assert.Equal(t, "Cerrar los ojos", title)
	assert.Equal(t, 4, rating)
	assert.JSONEq(t, `["Drama"]`, genres)
	assert.True(t, active)

	rows, err := db.Query(`SELECT id, movie_id FROM screenings ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()
	var got [][2]string
	for rows.Next() {
		var id, movieID string
		require.NoError(t, rows.Scan(&id, &movieID))
		got = append(got, [2]string{id, movieID})
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, [][2]string{{"s1", "m1"}, {"s2", "mGone"}}, got, "dangling references are stored")

	var generated string
	require.NoError(t, db.QueryRow(`SELECT value FROM snapshot_meta WHERE key = 'generated_at'`).Scan(&generated))
	assert.Equal(t, "2024-06-01T09:00:00Z", generated)
}

func TestSQLiteWriter_ReplacesContents(t *testing.T) {
	w, db := openTestWriter(t)
	ctx := context.Background()

	first, err := Build(ctx, sampleSource())
	require.NoError(t, err)
	require.NoError(t, w.Write(ctx, first))

	second := &Snapshot{
		GeneratedAt: time.Now(),
		Movies:      []catalog.Movie{{ID: "m9", Title: "Perfect Days"}},
	}
	require.NoError(t, w.Write(ctx, second))

	count := func(table string) int {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
		return n
	}
	assert.Equal(t, 1, count("movies"))
	assert.Equal(t, 0, count("cinemas"))
	assert.Equal(t, 0, count("screenings"))
}

func TestSQLiteWriter_FailedWriteKeepsPrevious(t *testing.T) {
	w, db := openTestWriter(t)
	ctx := context.Background()

	first, err := Build(ctx, sampleSource())
	require.NoError(t, err)
	require.NoError(t, w.Write(ctx, first))

	bad := &Snapshot{Movies: []catalog.Movie{{ID: "dup"}, {ID: "dup"}}}
	require.Error(t, w.Write(ctx, bad))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM movies`).Scan(&n))
	assert.Equal(t, 2, n, "the transaction is rolled back")
}

func TestOpenSQLite_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	w, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = OpenSQLite(path)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}
