package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vomadrid/vomadrid/internal/migrations"
)

// SQLiteWriter stores snapshots in a SQLite database.
type SQLiteWriter struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the
// snapshot schema.
func OpenSQLite(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	w, err := NewSQLiteWriter(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

// NewSQLiteWriter applies the snapshot schema to db.
func NewSQLiteWriter(db *sql.DB) (*SQLiteWriter, error) {
	if _, err := db.Exec(migrations.SnapshotSQL); err != nil {
		return nil, fmt.Errorf("apply snapshot schema: %w", err)
	}
	return &SQLiteWriter{db: db}, nil
}

// Close closes the database.
func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}

// Write replaces the database contents with s in a single transaction.
func (w *SQLiteWriter) Write(ctx context.Context, s *Snapshot) (err error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"movies", "cinemas", "screenings", "snapshot_meta"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err = insertMovies(ctx, tx, s); err != nil {
		return err
	}
	if err = insertCinemas(ctx, tx, s); err != nil {
		return err
	}
	if err = insertScreenings(ctx, tx, s); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (key, value) VALUES ('generated_at', ?)`,
		s.GeneratedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert snapshot meta: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func insertMovies(ctx context.Context, tx *sql.Tx, s *Snapshot) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO movies (id, position, title, original_title, poster, synopsis, trailer_url, rating,
			genres, runtime, age_rating, original_language, imdb_link, is_active, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare movies: %w", err)
	}
	defer stmt.Close()

	for i, m := range s.Movies {
		genres, err := json.Marshal(nonNil(m.Genres))
		if err != nil {
			return fmt.Errorf("encode genres of %s: %w", m.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			m.ID, i, m.Title, m.OriginalTitle, m.Poster, m.Synopsis, m.TrailerURL, m.Rating,
			string(genres), m.Runtime, m.AgeRating, m.OriginalLanguage, m.IMDbLink, m.IsActive, m.SortOrder,
		); err != nil {
			return fmt.Errorf("insert movie %s: %w", m.ID, err)
		}
	}
	return nil
}

func insertCinemas(ctx context.Context, tx *sql.Tx, s *Snapshot) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cinemas (id, position, name, chain, address, city, url, google_maps_url, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cinemas: %w", err)
	}
	defer stmt.Close()

	for i, c := range s.Cinemas {
		if _, err := stmt.ExecContext(ctx,
			c.ID, i, c.Name, c.Chain, c.Address, c.City, c.URL, c.GoogleMapsURL, c.IsActive,
		); err != nil {
			return fmt.Errorf("insert cinema %s: %w", c.ID, err)
		}
	}
	return nil
}

func insertScreenings(ctx context.Context, tx *sql.Tx, s *Snapshot) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO screenings (id, position, screening_id, movie_id, cinema_id, date, booking_url, notes, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare screenings: %w", err)
	}
	defer stmt.Close()

	for i, sc := range s.Screenings {
		if _, err := stmt.ExecContext(ctx,
			sc.ID, i, sc.ScreeningID, sc.MovieID, sc.CinemaID, sc.Date, sc.BookingURL, sc.Notes, sc.IsActive,
		); err != nil {
			return fmt.Errorf("insert screening %s: %w", sc.ID, err)
		}
	}
	return nil
}
