package catalog

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/vomadrid/vomadrid/pkg/airtable"
)

const defaultSortOrder = 999

// MapMovie builds a Movie from a raw record. Missing or mistyped cells fall
// back to defaults; it never fails.
func (s Schema) MapMovie(r airtable.Record) Movie {
	f, m := r.Fields, s.Movie
	rating, _ := number(f, m.Rating)
	runtime, _ := number(f, m.Runtime)
	sortOrder, ok := number(f, m.SortOrder)
	if !ok {
		sortOrder = defaultSortOrder
	}

	return Movie{
		ID:               r.ID,
		Title:            text(f, m.Title),
		OriginalTitle:    text(f, m.OriginalTitle),
		Poster:           text(f, m.Poster),
		Synopsis:         text(f, m.Synopsis),
		TrailerURL:       text(f, m.TrailerURL),
		Rating:           RescaleRating(rating),
		Genres:           list(f, m.Genres),
		Runtime:          FormatRuntime(int(runtime)),
		AgeRating:        first(f, m.AgeRating),
		OriginalLanguage: text(f, m.OriginalLanguage),
		IMDbLink:         text(f, m.IMDbLink),
		IsActive:         boolean(f, m.IsActive),
		SortOrder:        int(sortOrder),
	}
}

// MapCinema builds a Cinema from a raw record.
func (s Schema) MapCinema(r airtable.Record) Cinema {
	f, c := r.Fields, s.Cinema
	return Cinema{
		ID:            r.ID,
		Name:          text(f, c.Name),
		Chain:         text(f, c.Chain),
		Address:       text(f, c.Address),
		City:          text(f, c.City),
		URL:           text(f, c.URL),
		GoogleMapsURL: text(f, c.GoogleMapsURL),
		IsActive:      boolean(f, c.IsActive),
	}
}

// MapScreening builds a Screening from a raw record. Linked movie and
// cinema IDs are the first element of their link cells.
func (s Schema) MapScreening(r airtable.Record) Screening {
	f, sc := r.Fields, s.Screening
	id, _ := number(f, sc.ID)
	return Screening{
		ID:          r.ID,
		ScreeningID: int(id),
		MovieID:     first(f, sc.Movie),
		CinemaID:    first(f, sc.Cinema),
		Date:        text(f, sc.Date),
		BookingURL:  text(f, sc.BookingURL),
		Notes:       text(f, sc.Notes),
		IsActive:    boolean(f, sc.IsActive),
	}
}

// RescaleRating maps a 0-10 score onto 0-5 stars, rounding to nearest.
func RescaleRating(r float64) int {
	if math.IsNaN(r) || r < 0 {
		r = 0
	}
	if r > 10 {
		r = 10
	}
	return int(math.Round(r / 10 * 5))
}

// FormatRuntime renders a duration in seconds as "2h 5min" or "45min".
// Zero or negative durations render as "".
func FormatRuntime(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%dmin", m)
}

func text(f map[string]any, name string) string {
	s, _ := f[name].(string)
	return s
}

func boolean(f map[string]any, name string) bool {
	b, _ := f[name].(bool)
	return b
}

func number(f map[string]any, name string) (float64, bool) {
	switch v := f[name].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	default:
		return 0, false
	}
}

// list returns the string elements of a multi-valued cell, never nil.
func list(f map[string]any, name string) []string {
	out := []string{}
	switch v := f[name].(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func first(f map[string]any, name string) string {
	if l := list(f, name); len(l) > 0 {
		return l[0]
	}
	return ""
}
