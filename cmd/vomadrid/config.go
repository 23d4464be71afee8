package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vomadrid/vomadrid/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, field overrides, and environment variable substitution without contacting Airtable.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Long: `Writes the commented example configuration. With --resolved it writes the
effective configuration instead: the loaded file (or defaults) with .env and
environment overrides applied. The API token is always left as a reference
to AIRTABLE_API_TOKEN.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var (
	configInitForce    bool
	configInitResolved bool
)

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitResolved, "resolved", false, "Write the effective configuration")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd, configInitCmd)
}

func runConfigTest(_ *cobra.Command, args []string) error {
	path := "config.toml"
	if len(args) > 0 {
		path = args[0]
	} else if configPath != "" {
		path = configPath
	}

	fmt.Printf("Validating %s...\n\n", path)

	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(os.Stdout, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := buildSchema(cfg.Fields); err != nil {
		fmt.Printf("Validation errors:\n  - %s\n\n", err)
		return fmt.Errorf("configuration invalid")
	}

	printConfigSummary(os.Stdout, cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func runConfigInit(_ *cobra.Command, args []string) error {
	path := "config.toml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := writeConfigFile(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func writeConfigFile(path string) error {
	if !configInitResolved {
		return config.WriteDefault(path)
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, _, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	return cfg.Write(path)
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Server:     %s (log: %s)\n", cfg.Addr(), cfg.Server.LogLevel)

	creds := "not configured (listings will be empty)"
	if cfg.HasCredentials() {
		creds = fmt.Sprintf("base %s, token %s", cfg.Airtable.BaseID, mask(cfg.Airtable.APIToken))
	}
	fmt.Fprintf(w, "  Airtable:   %s\n", creds)
	fmt.Fprintf(w, "  Tables:     movies=%s cinemas=%s screenings=%s\n",
		cfg.Airtable.Tables.Movies, cfg.Airtable.Tables.Cinemas, cfg.Airtable.Tables.Screenings)
	fmt.Fprintf(w, "  Rate limit: %g req/s (burst %d), timeout %s\n",
		cfg.Airtable.RateLimit, cfg.Airtable.Burst, cfg.Airtable.Timeout)

	backend := "memory"
	if cfg.Cache.RedisURL != "" {
		backend = "redis"
	}
	fmt.Fprintf(w, "  Cache:      %s, ttl %s\n", backend, cfg.Cache.TTL)

	var renamed []string
	for kind, names := range map[string]map[string]string{
		"movies": cfg.Fields.Movies, "cinemas": cfg.Fields.Cinemas, "screenings": cfg.Fields.Screenings,
	} {
		for k := range names {
			renamed = append(renamed, kind+"."+k)
		}
	}
	if len(renamed) > 0 {
		sort.Strings(renamed)
		fmt.Fprintf(w, "  Fields:     %s\n", strings.Join(renamed, ", "))
	}
}

// mask hides all but the last four characters of a secret.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
