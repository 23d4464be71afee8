package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vomadrid/vomadrid/internal/catalog"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List active movies",
	Args:  cobra.NoArgs,
	RunE:  runMovies,
}

var cinemasCmd = &cobra.Command{
	Use:   "cinemas",
	Short: "List active cinemas",
	Args:  cobra.NoArgs,
	RunE:  runCinemas,
}

var screeningsCmd = &cobra.Command{
	Use:   "screenings",
	Short: "List upcoming screenings",
	Long: `Lists active screenings from yesterday on, with their movie and cinema.

Filters combine: --movie and --cinema take record IDs, --date matches a
date prefix such as 2024-06-02, and --chain matches the cinema's chain.`,
	Args: cobra.NoArgs,
	RunE: runScreenings,
}

var (
	movieFilter     catalog.MovieFilter
	screeningFilter catalog.ScreeningFilter
)

func init() {
	moviesCmd.Flags().StringVar(&movieFilter.Search, "search", "", "Match title or original title")
	moviesCmd.Flags().StringVar(&movieFilter.Genre, "genre", "", "Filter by genre")
	moviesCmd.Flags().StringVar(&movieFilter.Language, "language", "", "Filter by original language")
	moviesCmd.Flags().StringVar(&movieFilter.AgeRating, "age-rating", "", "Filter by age rating")

	screeningsCmd.Flags().StringVar(&screeningFilter.MovieID, "movie", "", "Movie record ID")
	screeningsCmd.Flags().StringVar(&screeningFilter.CinemaID, "cinema", "", "Cinema record ID")
	screeningsCmd.Flags().StringVar(&screeningFilter.Date, "date", "", "Date prefix (YYYY-MM-DD)")
	screeningsCmd.Flags().StringVar(&screeningFilter.Chain, "chain", "", "Cinema chain")

	rootCmd.AddCommand(moviesCmd, cinemasCmd, screeningsCmd)
}

func runMovies(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	movies, err := a.catalog.FilterMovies(cmd.Context(), movieFilter)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(os.Stdout, movies)
	}
	printMovies(os.Stdout, movies)
	return nil
}

func runCinemas(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	cinemas, err := a.catalog.ListCinemas(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(os.Stdout, cinemas)
	}
	printCinemas(os.Stdout, cinemas)
	return nil
}

func runScreenings(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	screenings, err := a.catalog.ListScreenings(cmd.Context(), screeningFilter)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(os.Stdout, screenings)
	}
	printScreenings(os.Stdout, screenings)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printMovies(w io.Writer, movies []catalog.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies")
		return
	}

	fmt.Fprintf(w, "Movies (%d):\n\n", len(movies))
	fmt.Fprintf(w, "  %-18s %-40s %-8s %-10s %s\n", "ID", "TITLE", "RUNTIME", "RATING", "GENRES")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 100))
	for _, m := range movies {
		fmt.Fprintf(w, "  %-18s %-40s %-8s %-10s %s\n",
			m.ID, truncate(m.Title, 40), dash(m.Runtime), stars(m.Rating), dash(strings.Join(m.Genres, ", ")))
	}
}

func printCinemas(w io.Writer, cinemas []catalog.Cinema) {
	if len(cinemas) == 0 {
		fmt.Fprintln(w, "No cinemas")
		return
	}

	fmt.Fprintf(w, "Cinemas (%d):\n\n", len(cinemas))
	fmt.Fprintf(w, "  %-18s %-30s %-20s %s\n", "ID", "NAME", "CHAIN", "ADDRESS")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 100))
	for _, c := range cinemas {
		fmt.Fprintf(w, "  %-18s %-30s %-20s %s\n",
			c.ID, truncate(c.Name, 30), truncate(dash(c.Chain), 20), dash(c.Address))
	}
}

func printScreenings(w io.Writer, screenings []catalog.Screening) {
	if len(screenings) == 0 {
		fmt.Fprintln(w, "No screenings")
		return
	}

	fmt.Fprintf(w, "Screenings (%d):\n\n", len(screenings))
	fmt.Fprintf(w, "  %-24s %-36s %-26s %s\n", "DATE", "MOVIE", "CINEMA", "TICKETS")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 110))
	for _, s := range screenings {
		movie := "? " + s.MovieID
		if s.Movie != nil {
			movie = s.Movie.Title
		}
		cinema := "? " + s.CinemaID
		if s.Cinema != nil {
			cinema = s.Cinema.Name
		}
		fmt.Fprintf(w, "  %-24s %-36s %-26s %s\n",
			s.Date, truncate(movie, 36), truncate(cinema, 26), dash(s.BookingURL))
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// stars renders a 0-5 rating.
func stars(n int) string {
	if n <= 0 {
		return "-"
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("*", n) + strings.Repeat(".", 5-n)
}
