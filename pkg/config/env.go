package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DefaultConfigPath is the document read when neither --config nor
// ARBITRARY_CONFIG is set.
const DefaultConfigPath = "arbitrary.yaml"

// Settings are the process-level options read from the environment. Flags
// override them; they override document values.
type Settings struct {
	ConfigPath  string  `env:"ARBITRARY_CONFIG" envDefault:"arbitrary.yaml"`
	Seed        *uint64 `env:"ARBITRARY_SEED"`
	MaxTries    *int    `env:"ARBITRARY_MAX_TRIES"`
	LogLevel    string  `env:"ARBITRARY_LOG_LEVEL" envDefault:"info"`
	LogFormat   string  `env:"ARBITRARY_LOG_FORMAT" envDefault:"text"`
	Concurrency int     `env:"ARBITRARY_CONCURRENCY" envDefault:"0"`
}

// LoadSettings parses Settings from the process environment.
func LoadSettings() (Settings, error) {
	return parseSettings(env.Options{})
}

// LoadSettingsFrom parses Settings from the given variables instead of the
// process environment.
func LoadSettingsFrom(environ map[string]string) (Settings, error) {
	return parseSettings(env.Options{Environment: environ})
}

func parseSettings(opts env.Options) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if s.Concurrency < 0 {
		return Settings{}, fmt.Errorf("parse env: ARBITRARY_CONCURRENCY must not be negative, got %d", s.Concurrency)
	}
	if s.MaxTries != nil && *s.MaxTries < 0 {
		return Settings{}, fmt.Errorf("parse env: ARBITRARY_MAX_TRIES must not be negative, got %d", *s.MaxTries)
	}
	return s, nil
}

// Apply overlays the environment seed and retry budget on doc.
func (s Settings) Apply(doc *Document) {
	if s.Seed != nil {
		doc.Seed = *s.Seed
	}
	if s.MaxTries != nil {
		doc.MaxTries = *s.MaxTries
	}
}
