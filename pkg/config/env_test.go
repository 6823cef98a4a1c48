package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFrom_Defaults(t *testing.T) {
	s, err := LoadSettingsFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigPath, s.ConfigPath)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Zero(t, s.Concurrency)
	assert.Nil(t, s.Seed)
	assert.Nil(t, s.MaxTries)
}

func TestLoadSettingsFrom_Values(t *testing.T) {
	s, err := LoadSettingsFrom(map[string]string{
		"ARBITRARY_CONFIG":      "gen.json",
		"ARBITRARY_SEED":        "7",
		"ARBITRARY_MAX_TRIES":   "99",
		"ARBITRARY_LOG_LEVEL":   "debug",
		"ARBITRARY_LOG_FORMAT":  "json",
		"ARBITRARY_CONCURRENCY": "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "gen.json", s.ConfigPath)
	require.NotNil(t, s.Seed)
	assert.Equal(t, uint64(7), *s.Seed)
	require.NotNil(t, s.MaxTries)
	assert.Equal(t, 99, *s.MaxTries)
	assert.Equal(t, 3, s.Concurrency)

	doc := &Document{Seed: 1, MaxTries: 5}
	s.Apply(doc)
	assert.Equal(t, uint64(7), doc.Seed)
	assert.Equal(t, 99, doc.MaxTries)
}

func TestLoadSettingsFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"seed not a number":    {"ARBITRARY_SEED": "abc"},
		"negative concurrency": {"ARBITRARY_CONCURRENCY": "-1"},
		"negative max tries":   {"ARBITRARY_MAX_TRIES": "-5"},
	}
	for name, environ := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSettingsFrom(environ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse env")
		})
	}
}

func TestSettings_ApplyKeepsDocumentValues(t *testing.T) {
	doc := &Document{Seed: 3, MaxTries: 10}
	Settings{}.Apply(doc)
	assert.Equal(t, uint64(3), doc.Seed)
	assert.Equal(t, 10, doc.MaxTries)
}
