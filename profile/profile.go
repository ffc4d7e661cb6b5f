package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SentenceBounds is the pacing window a draft's average sentence length
// should land in, in words.
type SentenceBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// StyleProfile describes one channel's voice and its quality bar.
// Loaded once per run and shared read-only by every component.
type StyleProfile struct {
	ChannelName      string         `json:"channel_name"`
	Tone             []string       `json:"tone"`
	FormalityLevel   string         `json:"formality_level"`
	Pacing           string         `json:"pacing"`
	HumorTypes       []string       `json:"humor_types"`
	SignaturePhrases []string       `json:"signature_phrases"`
	Avoid            []string       `json:"avoid"`
	Examples         []string       `json:"examples"`
	SentenceLength   SentenceBounds `json:"sentence_length"`
	TemplateID       string         `json:"template_id"`
	Threshold        int            `json:"threshold"`
	MaxRefinements   int            `json:"max_refinements"`
}

const (
	DefaultThreshold      = 75
	DefaultMaxRefinements = 2
)

var required = []string{"tone", "formality_level", "pacing", "signature_phrases", "avoid"}

// Load looks up the profile for a channel in dir. The file name follows the
// `<channel>_brand_voice.json` convention, channel lowercased.
func Load(dir, channelName string) (*StyleProfile, error) {
	name := strings.ToLower(strings.TrimSpace(channelName))
	if name == "" {
		return nil, fmt.Errorf("channel name is empty")
	}
	path := filepath.Join(dir, name+"_brand_voice.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("style profile not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read style profile %s: %w", path, err)
	}
	return Parse(data, name)
}

// Parse decodes and validates a raw profile document.
func Parse(data []byte, channelName string) (*StyleProfile, error) {
	// decode into a map first so missing required fields can be named
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("malformed style profile for %q: %w", channelName, err)
	}
	var missing []string
	for _, f := range required {
		if _, ok := fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("style profile for %q missing required fields: %s",
			channelName, strings.Join(missing, ", "))
	}

	var p StyleProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("malformed style profile for %q: %w", channelName, err)
	}
	if p.ChannelName == "" {
		p.ChannelName = channelName
	}
	p.applyDefaults()
	return &p, nil
}

func (p *StyleProfile) applyDefaults() {
	if p.Threshold <= 0 {
		p.Threshold = DefaultThreshold
	}
	if p.MaxRefinements <= 0 {
		p.MaxRefinements = DefaultMaxRefinements
	}
	if p.SentenceLength.Min <= 0 {
		p.SentenceLength.Min = 5
	}
	if p.SentenceLength.Max <= 0 {
		p.SentenceLength.Max = 15
	}
}
