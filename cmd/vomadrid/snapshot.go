package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vomadrid/vomadrid/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write the listings to disk for offline use",
	Long: `Fetches movies, cinemas and resolved screenings under the same rules as
the API and writes movies.json, cinemas.json and screenings.json into the
output directory. With --sqlite the same data also goes into a SQLite file.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

var (
	snapshotOut    string
	snapshotSQLite string
)

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "public/data", "Output directory for JSON files")
	snapshotCmd.Flags().StringVar(&snapshotSQLite, "sqlite", "", "Also write a SQLite database to this path")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := snapshot.Build(ctx, a.catalog)
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}

	if err := snapshot.WriteJSON(snapshotOut, s); err != nil {
		return err
	}
	a.log.Info("snapshot written",
		zap.String("dir", snapshotOut),
		zap.Int("movies", len(s.Movies)),
		zap.Int("cinemas", len(s.Cinemas)),
		zap.Int("screenings", len(s.Screenings)),
	)

	if snapshotSQLite != "" {
		w, err := snapshot.OpenSQLite(snapshotSQLite)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Write(ctx, s); err != nil {
			return err
		}
		a.log.Info("snapshot database written", zap.String("path", snapshotSQLite))
	}

	if jsonOutput {
		return printJSON(os.Stdout, map[string]int{
			"movies":     len(s.Movies),
			"cinemas":    len(s.Cinemas),
			"screenings": len(s.Screenings),
		})
	}
	fmt.Printf("Wrote %d movies, %d cinemas, %d screenings to %s\n",
		len(s.Movies), len(s.Cinemas), len(s.Screenings), snapshotOut)
	return nil
}
