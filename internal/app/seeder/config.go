package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds index pipeline settings.
type Config struct {
	WordNetPath   string `yaml:"wordnet_path"   env:"VOCAB_INDEX_WORDNET"`
	FrequencyPath string `yaml:"frequency_path" env:"VOCAB_INDEX_FREQUENCY"`
	EtymologyPath string `yaml:"etymology_path" env:"VOCAB_INDEX_ETYMOLOGY"`
	BatchSize     int    `yaml:"batch_size"     env:"VOCAB_INDEX_BATCH_SIZE" env-default:"1000"`
	DryRun        bool   `yaml:"dry_run"        env:"VOCAB_INDEX_DRY_RUN"`
}

// LoadConfig reads pipeline configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("index config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("index config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("index config: read env: %w", err)
	}

	return &cfg, nil
}

// HasSources reports whether at least one dataset path is set.
func (c Config) HasSources() bool {
	return c.WordNetPath != "" || c.FrequencyPath != "" || c.EtymologyPath != ""
}
