package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfile = `{
  "channel_name": "fireship",
  "tone": ["energetic", "sarcastic"],
  "formality_level": "casual",
  "pacing": "rapid-fire",
  "signature_phrases": ["in 100 seconds", "but wait"],
  "avoid": ["subscribe"],
  "sentence_length": {"min": 6, "max": 12},
  "threshold": 80,
  "max_refinements": 3
}`

func writeProfile(t *testing.T, dir, channel, content string) {
	t.Helper()
	path := filepath.Join(dir, channel+"_brand_voice.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadValidProfile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "fireship", validProfile)

	p, err := Load(dir, "Fireship") // lookup is case-insensitive
	require.NoError(t, err)

	assert.Equal(t, "fireship", p.ChannelName)
	assert.Equal(t, []string{"energetic", "sarcastic"}, p.Tone)
	assert.Equal(t, 80, p.Threshold)
	assert.Equal(t, 3, p.MaxRefinements)
	assert.Equal(t, 6, p.SentenceLength.Min)
}

func TestLoadMissingProfileIsNotExist(t *testing.T) {
	_, err := Load(t.TempDir(), "nosuchchannel")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "nosuchchannel_brand_voice.json")
}

func TestLoadEmptyChannelName(t *testing.T) {
	_, err := Load(t.TempDir(), "  ")
	require.Error(t, err)
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"tone": [`), "fireship")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestParseNamesMissingRequiredFields(t *testing.T) {
	_, err := Parse([]byte(`{"tone": ["dry"], "pacing": "slow"}`), "fireship")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formality_level")
	assert.Contains(t, err.Error(), "signature_phrases")
	assert.Contains(t, err.Error(), "avoid")
	assert.NotContains(t, err.Error(), `"tone"`)
}

func TestParseAppliesDefaults(t *testing.T) {
	minimal := `{
	  "tone": ["dry"],
	  "formality_level": "casual",
	  "pacing": "steady",
	  "signature_phrases": ["right then"],
	  "avoid": ["clickbait"]
	}`
	p, err := Parse([]byte(minimal), "somechannel")
	require.NoError(t, err)

	assert.Equal(t, "somechannel", p.ChannelName)
	assert.Equal(t, DefaultThreshold, p.Threshold)
	assert.Equal(t, DefaultMaxRefinements, p.MaxRefinements)
	assert.Equal(t, 5, p.SentenceLength.Min)
	assert.Equal(t, 15, p.SentenceLength.Max)
}
