// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Airtable AirtableConfig `toml:"airtable"`
	Cache    CacheConfig    `toml:"cache"`
	Resolve  ResolveConfig  `toml:"resolve"`
	Fields   FieldsConfig   `toml:"fields"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// AirtableConfig locates the upstream base. Empty credentials are allowed;
// every query then returns no data.
type AirtableConfig struct {
	BaseID    string        `toml:"base_id"`
	APIToken  string        `toml:"api_token"`
	BaseURL   string        `toml:"base_url"`
	Tables    TablesConfig  `toml:"tables"`
	RateLimit float64       `toml:"rate_limit"` // requests per second, 0 disables
	Burst     int           `toml:"burst"`
	Timeout   time.Duration `toml:"timeout"`
}

type TablesConfig struct {
	Movies     string `toml:"movies"`
	Cinemas    string `toml:"cinemas"`
	Screenings string `toml:"screenings"`
}

type CacheConfig struct {
	TTL time.Duration `toml:"ttl"`
	// RedisURL switches the query cache from process memory to Redis.
	RedisURL string `toml:"redis_url"`
}

type ResolveConfig struct {
	Concurrency int `toml:"concurrency"`
}

// FieldsConfig renames upstream fields, keyed by the entity's JSON field
// name, e.g. [fields.movies] title = "Título".
type FieldsConfig struct {
	Movies     map[string]string `toml:"movies"`
	Cinemas    map[string]string `toml:"cinemas"`
	Screenings map[string]string `toml:"screenings"`
}

// Environment variables that override the file.
const (
	EnvAPIToken        = "AIRTABLE_API_TOKEN"
	EnvBaseID          = "AIRTABLE_BASE_ID"
	EnvMoviesTable     = "AIRTABLE_MOVIES_TABLE"
	EnvCinemasTable    = "AIRTABLE_CINEMAS_TABLE"
	EnvScreeningsTable = "AIRTABLE_SCREENINGS_TABLE"
)

// DefaultRateLimit matches Airtable's limit of five requests per second
// per base.
const DefaultRateLimit = 5

// newConfig seeds values whose zero value is meaningful, so they are only
// defaulted when the key is absent from the file.
func newConfig() Config {
	return Config{Airtable: AirtableConfig{RateLimit: DefaultRateLimit}}
}

// Defaults returns the configuration used when no file is present.
// Environment overrides are applied.
func Defaults() *Config {
	cfg := newConfig()
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	cfg := newConfig()
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return &cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Airtable.BaseURL == "" {
		c.Airtable.BaseURL = "https://api.airtable.com/v0"
	}
	if c.Airtable.Tables.Movies == "" {
		c.Airtable.Tables.Movies = "movies"
	}
	if c.Airtable.Tables.Cinemas == "" {
		c.Airtable.Tables.Cinemas = "cinemas"
	}
	if c.Airtable.Tables.Screenings == "" {
		c.Airtable.Tables.Screenings = "screenings"
	}
	if c.Airtable.Burst == 0 {
		c.Airtable.Burst = 5
	}
	if c.Airtable.Timeout == 0 {
		c.Airtable.Timeout = 10 * time.Second
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 60 * time.Second
	}
}

func (c *Config) applyEnv() {
	for env, dst := range map[string]*string{
		EnvAPIToken:        &c.Airtable.APIToken,
		EnvBaseID:          &c.Airtable.BaseID,
		EnvMoviesTable:     &c.Airtable.Tables.Movies,
		EnvCinemasTable:    &c.Airtable.Tables.Cinemas,
		EnvScreeningsTable: &c.Airtable.Tables.Screenings,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// HasCredentials reports whether both upstream credentials are set.
func (c *Config) HasCredentials() bool {
	return c.Airtable.BaseID != "" && c.Airtable.APIToken != ""
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} with the variable's value. Unset
// variables without a default are left in place and reported as missing;
// ${VAR:-default} uses default when VAR is unset or empty.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, hasDefault, def := m[1], m[2] != "", m[3]

		if value, ok := os.LookupEnv(name); ok && (value != "" || !hasDefault) {
			return value
		}
		if hasDefault {
			return def
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})
	return out, missing
}
