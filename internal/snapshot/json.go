package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File names written by WriteJSON.
const (
	MoviesFile     = "movies.json"
	CinemasFile    = "cinemas.json"
	ScreeningsFile = "screenings.json"
)

// WriteJSON writes the three listings as 2-space indented JSON arrays into
// dir, creating it if needed. Existing files are replaced.
func WriteJSON(dir string, s *Snapshot) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	files := []struct {
		name string
		v    any
	}{
		{MoviesFile, nonNil(s.Movies)},
		{CinemasFile, nonNil(s.Cinemas)},
		{ScreeningsFile, nonNil(s.Screenings)},
	}
	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.v); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes through a temporary file so readers never see a
// partial array.
func writeFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadJSON loads a snapshot previously written by WriteJSON. GeneratedAt
// is taken from the movies file's modification time.
func ReadJSON(dir string) (*Snapshot, error) {
	s := &Snapshot{}
	if err := readFile(filepath.Join(dir, MoviesFile), &s.Movies); err != nil {
		return nil, err
	}
	if err := readFile(filepath.Join(dir, CinemasFile), &s.Cinemas); err != nil {
		return nil, err
	}
	if err := readFile(filepath.Join(dir, ScreeningsFile), &s.Screenings); err != nil {
		return nil, err
	}
	if fi, err := os.Stat(filepath.Join(dir, MoviesFile)); err == nil {
		s.GeneratedAt = fi.ModTime().UTC()
	}
	return s, nil
}

func readFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// nonNil makes empty listings encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
