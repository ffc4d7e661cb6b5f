package types

import "strings"

// TopicOrigin records how a topic entered the pipeline.
type TopicOrigin string

const (
	OriginUser       TopicOrigin = "user"
	OriginDiscovered TopicOrigin = "discovered"
)

// Topic identifies what one run is about. Created once per run, read-only after.
type Topic struct {
	Title  string      `json:"title"`
	Origin TopicOrigin `json:"origin"`
}

// TrendingItem is one candidate story from a trending source
type TrendingItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Score  int    `json:"score"`
	URL    string `json:"url"`
	Source string `json:"source"` // hackernews | reddit | youtube | cache
}

// ResearchBrief is the structured research summary for one topic.
// Produced once by the research service, never mutated afterwards.
type ResearchBrief struct {
	Topic     Topic    `json:"topic"`
	Brief     string   `json:"brief"`
	KeyPoints []string `json:"key_points,omitempty"`
	Angle     string   `json:"angle,omitempty"`
	Sources   []string `json:"sources,omitempty"`
	Mode      string   `json:"mode"` // live | cached
}

// ScriptDraft is one immutable version of the generated script
type ScriptDraft struct {
	Version      int     `json:"version"` // 1-based
	Format       string  `json:"format"`
	Text         string  `json:"text"`
	WordCount    int     `json:"word_count"`
	EstimatedSec float64 `json:"estimated_sec"`
}

// speaking pace used for duration estimates: 150 words/min
const wordsPerSecond = 2.5

// NewScriptDraft builds a draft version with derived word count and timing.
func NewScriptDraft(version int, format, text string) ScriptDraft {
	words := len(strings.Fields(text))
	return ScriptDraft{
		Version:      version,
		Format:       format,
		Text:         text,
		WordCount:    words,
		EstimatedSec: float64(words) / wordsPerSecond,
	}
}

// ValidationScore is the result of one scoring pass over one draft version.
type ValidationScore struct {
	DraftVersion   int      `json:"draft_version"`
	HeuristicScore int      `json:"heuristic_score"` // 0-100
	ModelScore     int      `json:"model_score"`     // 0-100, clamped; 0 when degraded
	Combined       int      `json:"combined"`        // weighted blend, 0-100
	Passed         bool     `json:"passed"`          // combined >= profile threshold
	Degraded       bool     `json:"degraded"`        // model sub-score unavailable
	Reasoning      string   `json:"reasoning,omitempty"`
	Feedback       []string `json:"feedback,omitempty"`
}

// Iteration pairs a draft version with its score for the audit trail
type Iteration struct {
	Draft ScriptDraft     `json:"draft"`
	Score ValidationScore `json:"score"`
}

// VideoMetadata holds the YouTube metadata generated for a finished script
type VideoMetadata struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	ThumbnailPrompt string   `json:"thumbnail_prompt"`
}
