package catalog

import (
	"encoding/json"
	"slices"
	"strings"
)

// ScreeningFilter narrows ListScreenings. Empty fields match everything.
//
// The JSON field order is alphabetical so that CacheKey is stable.
type ScreeningFilter struct {
	Chain    string `json:"chain,omitempty"`    // resolved cinema's chain, exact
	CinemaID string `json:"cinemaId,omitempty"` // exact
	Date     string `json:"date,omitempty"`     // prefix of the screening date, e.g. "2024-06-02"
	MovieID  string `json:"movieId,omitempty"`  // exact
}

// CacheKey derives a deterministic key from the filter values.
func (f ScreeningFilter) CacheKey() string {
	b, _ := json.Marshal(f)
	return "screenings:" + string(b)
}

func filterScreenings(in []Screening, keep func(Screening) bool) []Screening {
	out := make([]Screening, 0, len(in))
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// MovieFilter narrows a movie listing the way the listing page does.
type MovieFilter struct {
	Search    string // title or original title, accent and case insensitive
	Genre     string
	Language  string
	AgeRating string
}

// IsZero reports whether the filter matches everything.
func (f MovieFilter) IsZero() bool {
	return f == MovieFilter{}
}

// Match reports whether m satisfies every set criterion.
func (f MovieFilter) Match(m Movie) bool {
	if f.Genre != "" && !slices.Contains(m.Genres, f.Genre) {
		return false
	}
	if f.Language != "" && m.OriginalLanguage != f.Language {
		return false
	}
	if f.AgeRating != "" && m.AgeRating != f.AgeRating {
		return false
	}
	if strings.TrimSpace(f.Search) != "" && !MatchTitle(f.Search, m.Title, m.OriginalTitle) {
		return false
	}
	return true
}

// Facets are the distinct values the listing filters can take.
type Facets struct {
	Genres     []string `json:"genres"`
	Languages  []string `json:"languages"`
	AgeRatings []string `json:"ageRatings"`
	Chains     []string `json:"chains"`
}

func buildFacets(movies []Movie, cinemas []Cinema) Facets {
	var genres, languages, ages, chains []string
	for _, m := range movies {
		genres = append(genres, m.Genres...)
		languages = append(languages, m.OriginalLanguage)
		ages = append(ages, m.AgeRating)
	}
	for _, c := range cinemas {
		chains = append(chains, c.Chain)
	}
	return Facets{
		Genres:     distinct(genres),
		Languages:  distinct(languages),
		AgeRatings: distinct(ages),
		Chains:     distinct(chains),
	}
}

// distinct returns the sorted, non-empty unique values of in.
func distinct(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
