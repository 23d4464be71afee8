package catalog

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vomadrid/vomadrid/pkg/airtable"
)

func TestMapMovie_AllFields(t *testing.T) {
	rec := airtable.Record{
		ID: "recMovie1",
		Fields: map[string]any{
			"Title":             "Perfect Days",
			"Original title":    "パーフェクト・デイズ",
			"Poster":            "https://img.example/perfect-days.jpg",
			"Synopsis":          "A Tokyo toilet cleaner.",
			"Trailer URL":       "https://youtu.be/x",
			"Rating":            7.9,
			"Genres":            []any{"Drama"},
			"Runtime":           float64(124 * 60),
			"Age rating":        []any{"7", "12"},
			"Original language": "Japanese",
			"imdb_link":         "https://www.imdb.com/title/tt27503384/",
			"Is active":         true,
			"Sort order":        float64(3),
		},
	}

	got := DefaultSchema().MapMovie(rec)
	want := Movie{
		ID:               "recMovie1",
		Title:            "Perfect Days",
		OriginalTitle:    "パーフェクト・デイズ",
		Poster:           "https://img.example/perfect-days.jpg",
		Synopsis:         "A Tokyo toilet cleaner.",
		TrailerURL:       "https://youtu.be/x",
		Rating:           4,
		Genres:           []string{"Drama"},
		Runtime:          "2h 4min",
		AgeRating:        "7",
		OriginalLanguage: "Japanese",
		IMDbLink:         "https://www.imdb.com/title/tt27503384/",
		IsActive:         true,
		SortOrder:        3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapMovie mismatch (-want +got):\n%s", diff)
	}
}

func TestMapMovie_Defaults(t *testing.T) {
	got := DefaultSchema().MapMovie(airtable.Record{ID: "recEmpty"})

	want := Movie{
		ID:        "recEmpty",
		Genres:    []string{},
		SortOrder: 999,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestMapMovie_WrongTypesFallBack(t *testing.T) {
	rec := airtable.Record{
		ID: "recOdd",
		Fields: map[string]any{
			"Title":      42,
			"Rating":     "nine",
			"Genres":     "Drama",
			"Runtime":    "90 minutes",
			"Age rating": []any{12, "16"},
			"Is active":  "yes",
			"Sort order": nil,
		},
	}

	var got Movie
	require.NotPanics(t, func() { got = DefaultSchema().MapMovie(rec) })
	assert.Equal(t, "", got.Title)
	assert.Equal(t, 0, got.Rating)
	assert.Equal(t, []string{}, got.Genres)
	assert.Equal(t, "", got.Runtime)
	assert.Equal(t, "16", got.AgeRating, "non-string elements are skipped")
	assert.False(t, got.IsActive)
	assert.Equal(t, 999, got.SortOrder)
}

func TestMapMovie_DecodedJSON(t *testing.T) {
	var rec airtable.Record
	err := json.Unmarshal([]byte(`{"id":"recJ","fields":{"Rating":10,"Runtime":2700,"Sort order":0,"Genres":["Comedy","Drama"]}}`), &rec)
	require.NoError(t, err)

	got := DefaultSchema().MapMovie(rec)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "45min", got.Runtime)
	assert.Equal(t, 0, got.SortOrder, "an explicit zero sort order is kept")
	assert.Equal(t, []string{"Comedy", "Drama"}, got.Genres)
}

func TestRescaleRating(t *testing.T) {
	assert.Equal(t, 0, RescaleRating(0))
	assert.Equal(t, 5, RescaleRating(10))
	assert.Equal(t, 5, RescaleRating(100), "out-of-range scores are clamped")
	assert.Equal(t, 0, RescaleRating(-3))
	assert.Equal(t, 3, RescaleRating(5))
	assert.Equal(t, 4, RescaleRating(7.9))

	prev := 0
	for r := 0.0; r <= 100; r += 0.5 {
		got := RescaleRating(r)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 5)
		assert.GreaterOrEqual(t, got, prev, "rating %v is not monotonic", r)
		prev = got
	}
}

func TestFormatRuntime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, ""},
		{-60, ""},
		{45 * 60, "45min"},
		{90 * 60, "1h 30min"},
		{2 * 3600, "2h 0min"},
		{59, "0min"},
		{3*3600 + 7*60 + 30, "3h 7min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRuntime(tt.seconds), "FormatRuntime(%d)", tt.seconds)
	}
}

func TestMapCinema(t *testing.T) {
	rec := airtable.Record{
		ID: "recCine1",
		Fields: map[string]any{
			"Cinema name":     "Cines Embajadores",
			"Chain":           "Independent",
			"Address":         "Calle de Miguel Servet, 9",
			"City":            "Madrid",
			"URL":             "https://cinesembajadores.es",
			"Google Maps URL": "https://maps.app.goo.gl/x",
			"Is active":       true,
		},
	}
	got := DefaultSchema().MapCinema(rec)
	assert.Equal(t, Cinema{
		ID:            "recCine1",
		Name:          "Cines Embajadores",
		Chain:         "Independent",
		Address:       "Calle de Miguel Servet, 9",
		City:          "Madrid",
		URL:           "https://cinesembajadores.es",
		GoogleMapsURL: "https://maps.app.goo.gl/x",
		IsActive:      true,
	}, got)

	assert.Equal(t, Cinema{ID: "recBare"}, DefaultSchema().MapCinema(airtable.Record{ID: "recBare"}))
}

func TestMapScreening(t *testing.T) {
	rec := airtable.Record{
		ID: "recScr1",
		Fields: map[string]any{
			"ID":              float64(118),
			"Movie (linked)":  []any{"recMovie1", "recMovie2"},
			"Cinema (linked)": []any{"recCine1"},
			"Date":            "2024-06-02T19:30:00.000Z",
			"Booking URL":     "https://tickets.example/118",
			"Notes":           "Q&A with the director",
			"Is active":       true,
		},
	}
	got := DefaultSchema().MapScreening(rec)
	assert.Equal(t, Screening{
		ID:          "recScr1",
		ScreeningID: 118,
		MovieID:     "recMovie1",
		CinemaID:    "recCine1",
		Date:        "2024-06-02T19:30:00.000Z",
		BookingURL:  "https://tickets.example/118",
		Notes:       "Q&A with the director",
		IsActive:    true,
	}, got)

	bare := DefaultSchema().MapScreening(airtable.Record{ID: "recBare", Fields: map[string]any{"Movie (linked)": []any{}}})
	assert.Equal(t, "", bare.MovieID)
	assert.Equal(t, "", bare.CinemaID)
	assert.Nil(t, bare.Movie)
	assert.Nil(t, bare.Cinema)
}

func TestSchema_Override(t *testing.T) {
	s := DefaultSchema()
	err := s.Override("movies", map[string]string{"title": "Título", "imdbLink": "IMDb"})
	require.NoError(t, err)
	assert.Equal(t, "Título", s.Movie.Title)
	assert.Equal(t, "IMDb", s.Movie.IMDbLink)
	assert.Equal(t, "Original title", s.Movie.OriginalTitle, "untouched keys keep defaults")

	got := s.MapMovie(airtable.Record{Fields: map[string]any{"Título": "Cerrar los ojos"}})
	assert.Equal(t, "Cerrar los ojos", got.Title)

	err = s.Override("cinemas", map[string]string{"nmae": "x", "chian": "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chian, nmae")

	assert.Error(t, s.Override("theaters", nil))
}
