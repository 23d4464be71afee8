package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// MovieFields names the upstream columns of the movies table.
type MovieFields struct {
	Title            string
	OriginalTitle    string
	Poster           string
	Synopsis         string
	TrailerURL       string
	Rating           string
	Genres           string
	Runtime          string
	AgeRating        string
	OriginalLanguage string
	IMDbLink         string
	IsActive         string
	SortOrder        string
}

// CinemaFields names the upstream columns of the cinemas table.
type CinemaFields struct {
	Name          string
	Chain         string
	Address       string
	City          string
	URL           string
	GoogleMapsURL string
	IsActive      string
}

// ScreeningFields names the upstream columns of the screenings table.
type ScreeningFields struct {
	ID         string
	Movie      string
	Cinema     string
	Date       string
	BookingURL string
	Notes      string
	IsActive   string
}

// Schema is the single place where internal field keys meet upstream
// column names.
type Schema struct {
	Movie     MovieFields
	Cinema    CinemaFields
	Screening ScreeningFields
}

// DefaultSchema returns the column names used by the production base.
func DefaultSchema() Schema {
	return Schema{
		Movie: MovieFields{
			Title:            "Title",
			OriginalTitle:    "Original title",
			Poster:           "Poster",
			Synopsis:         "Synopsis",
			TrailerURL:       "Trailer URL",
			Rating:           "Rating",
			Genres:           "Genres",
			Runtime:          "Runtime",
			AgeRating:        "Age rating",
			OriginalLanguage: "Original language",
			IMDbLink:         "imdb_link",
			IsActive:         "Is active",
			SortOrder:        "Sort order",
		},
		Cinema: CinemaFields{
			Name:          "Cinema name",
			Chain:         "Chain",
			Address:       "Address",
			City:          "City",
			URL:           "URL",
			GoogleMapsURL: "Google Maps URL",
			IsActive:      "Is active",
		},
		Screening: ScreeningFields{
			ID:         "ID",
			Movie:      "Movie (linked)",
			Cinema:     "Cinema (linked)",
			Date:       "Date",
			BookingURL: "Booking URL",
			Notes:      "Notes",
			IsActive:   "Is active",
		},
	}
}

func (f *MovieFields) keys() map[string]*string {
	return map[string]*string{
		"title":            &f.Title,
		"originalTitle":    &f.OriginalTitle,
		"poster":           &f.Poster,
		"synopsis":         &f.Synopsis,
		"trailerUrl":       &f.TrailerURL,
		"rating":           &f.Rating,
		"genres":           &f.Genres,
		"runtime":          &f.Runtime,
		"ageRating":        &f.AgeRating,
		"originalLanguage": &f.OriginalLanguage,
		"imdbLink":         &f.IMDbLink,
		"isActive":         &f.IsActive,
		"sortOrder":        &f.SortOrder,
	}
}

func (f *CinemaFields) keys() map[string]*string {
	return map[string]*string{
		"name":          &f.Name,
		"chain":         &f.Chain,
		"address":       &f.Address,
		"city":          &f.City,
		"url":           &f.URL,
		"googleMapsUrl": &f.GoogleMapsURL,
		"isActive":      &f.IsActive,
	}
}

func (f *ScreeningFields) keys() map[string]*string {
	return map[string]*string{
		"screeningId": &f.ID,
		"movie":       &f.Movie,
		"cinema":      &f.Cinema,
		"date":        &f.Date,
		"bookingUrl":  &f.BookingURL,
		"notes":       &f.Notes,
		"isActive":    &f.IsActive,
	}
}

// Override renames upstream columns for one entity kind ("movies",
// "cinemas" or "screenings"). Keys are the JSON names of the entity fields.
func (s *Schema) Override(kind string, names map[string]string) error {
	var keys map[string]*string
	switch kind {
	case "movies":
		keys = s.Movie.keys()
	case "cinemas":
		keys = s.Cinema.keys()
	case "screenings":
		keys = s.Screening.keys()
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}

	var unknown []string
	for k, v := range names {
		p, ok := keys[k]
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		if v != "" {
			*p = v
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%s: unknown field keys: %s", kind, strings.Join(unknown, ", "))
	}
	return nil
}
