// Package catalog turns raw upstream records into movies, cinemas and
// screenings, resolves the links between them and answers listing queries.
package catalog

// Movie is a film currently or recently listed.
type Movie struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"originalTitle"`
	Poster           string   `json:"poster"`
	Synopsis         string   `json:"synopsis"`
	TrailerURL       string   `json:"trailerUrl"`
	Rating           int      `json:"rating"` // 0-5
	Genres           []string `json:"genres"`
	Runtime          string   `json:"runtime"` // "1h 30min", "45min" or ""
	AgeRating        string   `json:"ageRating"`
	OriginalLanguage string   `json:"originalLanguage"`
	IMDbLink         string   `json:"imdbLink"`
	IsActive         bool     `json:"isActive"`
	SortOrder        int      `json:"sortOrder"`
}

// Cinema is a venue showing original-language screenings.
type Cinema struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Chain         string `json:"chain"`
	Address       string `json:"address"`
	City          string `json:"city"`
	URL           string `json:"url"`
	GoogleMapsURL string `json:"googleMapsUrl"`
	IsActive      bool   `json:"isActive"`
}

// Screening is one showing of a movie at a cinema.
//
// Movie and Cinema are filled in by the resolver for each query and are nil
// when the link is empty or points at a record that does not exist.
type Screening struct {
	ID          string `json:"id"`
	ScreeningID int    `json:"screeningId"`
	MovieID     string `json:"movieId"`
	CinemaID    string `json:"cinemaId"`
	Date        string `json:"date"` // ISO-8601 date or date-time
	BookingURL  string `json:"bookingUrl"`
	Notes       string `json:"notes"`
	IsActive    bool   `json:"isActive"`

	Movie  *Movie  `json:"movie,omitempty"`
	Cinema *Cinema `json:"cinema,omitempty"`
}
