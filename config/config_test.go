package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"hackernews"}, cfg.Research.Sources)
	assert.Equal(t, 0.5, cfg.Scoring.HeuristicWeight)
	assert.Equal(t, 0.5, cfg.Scoring.ModelWeight)
	assert.Equal(t, 2, cfg.Workflow.LocalRetryAttempts)
	assert.Equal(t, 500, cfg.Workflow.RetryBackoffMs)
	assert.Equal(t, "gpt-4.1", cfg.LLM.Writer.Model)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.Validator.Model)
	assert.Equal(t, "profiles", cfg.Paths.Profiles)
	require.NoError(t, cfg.validate())
}

func TestLoadAppliesDefaultsOverPartialFile(t *testing.T) {
	path := writeConfig(t, `
research:
  sources: [reddit, youtube]
  subreddits: [golang]
llm:
  writer:
    model: gpt-4o
    temperature: 0.9
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"reddit", "youtube"}, cfg.Research.Sources)
	assert.Equal(t, []string{"golang"}, cfg.Research.Subreddits)
	assert.Equal(t, "gpt-4o", cfg.LLM.Writer.Model)
	assert.Equal(t, 0.9, cfg.LLM.Writer.Temperature)
	// untouched sections still get defaults
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.Scout.Model)
	assert.Equal(t, 0.5, cfg.Scoring.ModelWeight)
}

func TestLoadMissingFileIsNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadRejectsWeightsNotSummingToOne(t *testing.T) {
	path := writeConfig(t, `
scoring:
  heuristic_weight: 0.7
  model_weight: 0.7
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestLoadRejectsNegativeWeight(t *testing.T) {
	path := writeConfig(t, `
scoring:
  heuristic_weight: 1.5
  model_weight: -0.5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestLoadAcceptsHeuristicOnlyWeights(t *testing.T) {
	path := writeConfig(t, `
scoring:
  heuristic_weight: 1.0
  model_weight: 0.0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Scoring.HeuristicWeight)
	assert.Equal(t, 0.0, cfg.Scoring.ModelWeight)
}
