package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"text", "json"}
	cacheBackends = []string{"disk", "redis"}
)

// Validate checks enums and ranges and fills in default file locations
// under the user's home directory. Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if c.Lexicon.BatchSize <= 0 {
		return fmt.Errorf("lexicon.batch_size must be > 0 (got %d)", c.Lexicon.BatchSize)
	}
	if c.Sources.MaxRelated <= 0 {
		return fmt.Errorf("sources.max_related must be > 0 (got %d)", c.Sources.MaxRelated)
	}
	if c.Lookup.CallTimeout <= 0 {
		return fmt.Errorf("lookup.call_timeout must be > 0 (got %s)", c.Lookup.CallTimeout)
	}
	if c.Lookup.MaxDepth < 1 || c.Lookup.MaxDepth > 20 {
		return fmt.Errorf("lookup.max_depth must be in [1, 20] (got %d)", c.Lookup.MaxDepth)
	}
	if err := c.Shell.validate(); err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	return c.resolvePaths()
}

func (c *CacheConfig) validate() error {
	c.Backend = strings.ToLower(c.Backend)
	if !slices.Contains(cacheBackends, c.Backend) {
		return fmt.Errorf("backend must be one of %v (got %q)", cacheBackends, c.Backend)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be > 0 (got %s)", c.TTL)
	}
	if c.Backend == "redis" && c.RedisURL == "" {
		return fmt.Errorf("redis_url is required for the redis backend")
	}
	return nil
}

func (s *ShellConfig) validate() error {
	if s.Suggestions < 0 {
		return fmt.Errorf("suggestions must be >= 0 (got %d)", s.Suggestions)
	}
	if s.SuggestCutoff <= 0 || s.SuggestCutoff > 1 {
		return fmt.Errorf("suggest_cutoff must be in (0, 1] (got %v)", s.SuggestCutoff)
	}
	if s.MaxCompletions <= 0 {
		return fmt.Errorf("max_completions must be > 0 (got %d)", s.MaxCompletions)
	}
	return nil
}

// resolvePaths fills empty paths with their defaults and expands "~/".
func (c *Config) resolvePaths() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	c.Cache.Dir = resolvePath(home, c.Cache.Dir, filepath.Join(".cache", "vocab"))
	c.Lexicon.Path = resolvePath(home, c.Lexicon.Path, filepath.Join(".local", "share", "vocab", "lexicon.db"))
	c.Shell.HistoryPath = resolvePath(home, c.Shell.HistoryPath, filepath.Join(".local", "share", "vocab", "history"))
	if c.Metrics.TextfilePath != "" {
		c.Metrics.TextfilePath = resolvePath(home, c.Metrics.TextfilePath, "")
	}
	return nil
}

func resolvePath(home, path, fallback string) string {
	switch {
	case path == "":
		return filepath.Join(home, fallback)
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	default:
		return path
	}
}
