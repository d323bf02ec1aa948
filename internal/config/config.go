package config

import "time"

// Config is the root application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Cache   CacheConfig   `yaml:"cache"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Sources SourcesConfig `yaml:"sources"`
	Lookup  LookupConfig  `yaml:"lookup"`
	Shell   ShellConfig   `yaml:"shell"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"VOCAB_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"VOCAB_LOG_FORMAT" env-default:"text"`
}

// CacheConfig holds record cache settings.
type CacheConfig struct {
	Disabled    bool          `yaml:"disabled"     env:"VOCAB_CACHE_DISABLED"`
	Backend     string        `yaml:"backend"      env:"VOCAB_CACHE_BACKEND"      env-default:"disk"`
	Dir         string        `yaml:"dir"          env:"VOCAB_CACHE_DIR"`
	TTL         time.Duration `yaml:"ttl"          env:"VOCAB_CACHE_TTL"          env-default:"720h"`
	RedisURL    string        `yaml:"redis_url"    env:"VOCAB_REDIS_URL"          env-default:"redis://localhost:6379/0"`
	RedisPrefix string        `yaml:"redis_prefix" env:"VOCAB_REDIS_PREFIX"       env-default:"vocab:"`
}

// LexiconConfig holds the offline lexicon index settings.
type LexiconConfig struct {
	Path      string `yaml:"path"       env:"VOCAB_LEXICON_PATH"`
	BatchSize int    `yaml:"batch_size" env:"VOCAB_LEXICON_BATCH_SIZE" env-default:"1000"`
}

// SourcesConfig holds network source settings.
type SourcesConfig struct {
	DictionaryURL string `yaml:"dictionary_url" env:"VOCAB_DICTIONARY_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	WiktionaryURL string `yaml:"wiktionary_url" env:"VOCAB_WIKTIONARY_URL" env-default:"https://en.wiktionary.org/wiki"`
	UserAgent     string `yaml:"user_agent"     env:"VOCAB_USER_AGENT"     env-default:"vocab-cli/0.1 (https://github.com/vocab-cli; educational tool)"`
	MaxRelated    int    `yaml:"max_related"    env:"VOCAB_MAX_RELATED"    env-default:"20"`
}

// LookupConfig bounds each merged lookup.
type LookupConfig struct {
	CallTimeout time.Duration `yaml:"call_timeout" env:"VOCAB_CALL_TIMEOUT" env-default:"5s"`
	MaxDepth    int           `yaml:"max_depth"    env:"VOCAB_MAX_DEPTH"    env-default:"5"`
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	HistoryPath    string  `yaml:"history_path"    env:"VOCAB_HISTORY_PATH"`
	Suggestions    int     `yaml:"suggestions"     env:"VOCAB_SUGGESTIONS"     env-default:"3"`
	SuggestCutoff  float64 `yaml:"suggest_cutoff"  env:"VOCAB_SUGGEST_CUTOFF"  env-default:"0.7"`
	MaxCompletions int     `yaml:"max_completions" env:"VOCAB_MAX_COMPLETIONS" env-default:"20"`
}

// MetricsConfig holds metrics export settings. An empty textfile path
// disables the export.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" env:"VOCAB_METRICS_TEXTFILE"`
}
