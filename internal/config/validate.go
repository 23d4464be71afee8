package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid). Missing upstream
// credentials are not an error.
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if u, err := url.Parse(c.Airtable.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("airtable.base_url: must be an absolute URL, got %q", c.Airtable.BaseURL))
	}
	if c.Airtable.RateLimit < 0 {
		errs = append(errs, fmt.Sprintf("airtable.rate_limit: must not be negative, got %v", c.Airtable.RateLimit))
	}
	if c.Airtable.Burst < 0 {
		errs = append(errs, fmt.Sprintf("airtable.burst: must not be negative, got %d", c.Airtable.Burst))
	}
	if c.Airtable.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("airtable.timeout: must not be negative, got %s", c.Airtable.Timeout))
	}

	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.ttl: must not be negative, got %s", c.Cache.TTL))
	}
	if c.Cache.RedisURL != "" {
		if u, err := url.Parse(c.Cache.RedisURL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			errs = append(errs, fmt.Sprintf("cache.redis_url: must be a redis:// or rediss:// URL, got %q", c.Cache.RedisURL))
		}
	}

	if c.Resolve.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("resolve.concurrency: must not be negative, got %d", c.Resolve.Concurrency))
	}

	return errs
}
