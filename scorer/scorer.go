package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/sinu-sinu/content-automation-ai/config"
	"github.com/sinu-sinu/content-automation-ai/llm"
	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/retry"
	"github.com/sinu-sinu/content-automation-ai/types"
)

// maxFeedback caps the feedback list so refinement prompts stay small
const maxFeedback = 8

// Scorer produces a ValidationScore for a (draft, profile) pair by blending
// a deterministic heuristic sub-score with a model-based one.
type Scorer struct {
	llm          llm.Client
	prof         *profile.StyleProfile
	heuristicW   float64
	modelW       float64
	modelRetries retry.Config
}

// New creates a Scorer. Weights come from config and are validated there.
func New(cfg *config.Config, client llm.Client, prof *profile.StyleProfile) *Scorer {
	return &Scorer{
		llm:        client,
		prof:       prof,
		heuristicW: cfg.Scoring.HeuristicWeight,
		modelW:     cfg.Scoring.ModelWeight,
		modelRetries: retry.Config{
			Attempts: cfg.Workflow.LocalRetryAttempts,
			Backoff:  time.Duration(cfg.Workflow.RetryBackoffMs) * time.Millisecond,
			OnRetry: func(attempt int, err error) {
				log.Printf("[scorer] Model scoring attempt %d failed: %v — retrying", attempt, err)
			},
		},
	}
}

// modelVerdict is the JSON document the validator model must return
type modelVerdict struct {
	Score       int      `json:"score"`
	Reasoning   string   `json:"reasoning"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// Score computes the ValidationScore for one draft version. The model call
// is retried a bounded number of times; when it still fails the score
// degrades to heuristic-only with the model weight folded into the heuristic
// weight. A degraded score is a result, never an error — only context
// cancellation propagates.
func (s *Scorer) Score(ctx context.Context, draft types.ScriptDraft) (types.ValidationScore, error) {
	log.Printf("[scorer] Scoring script v%d against %s voice...", draft.Version, s.prof.ChannelName)

	hScore, hFeedback := heuristicScore(draft, s.prof)

	verdict, err := retry.Do(ctx, s.modelRetries, func(ctx context.Context) (*modelVerdict, error) {
		return s.modelScore(ctx, draft)
	})
	if err != nil {
		if ctx.Err() != nil {
			return types.ValidationScore{}, ctx.Err()
		}
		log.Printf("[scorer] ⚠️  Model scoring unavailable, degrading to heuristic-only: %v", err)
		score := types.ValidationScore{
			DraftVersion:   draft.Version,
			HeuristicScore: hScore,
			Combined:       Combine(hScore, 0, 1.0, 0),
			Degraded:       true,
			Feedback:       capFeedback(dedupe(hFeedback)),
		}
		score.Passed = score.Combined >= s.prof.Threshold
		s.logVerdict(score)
		return score, nil
	}

	mScore := clamp(verdict.Score)
	feedback := append(append([]string{}, hFeedback...), verdict.Weaknesses...)
	feedback = append(feedback, verdict.Suggestions...)

	score := types.ValidationScore{
		DraftVersion:   draft.Version,
		HeuristicScore: hScore,
		ModelScore:     mScore,
		Combined:       Combine(hScore, mScore, s.heuristicW, s.modelW),
		Reasoning:      verdict.Reasoning,
		Feedback:       capFeedback(dedupe(feedback)),
	}
	score.Passed = score.Combined >= s.prof.Threshold
	s.logVerdict(score)
	return score, nil
}

// Combine blends the two sub-scores. Pure and deterministic: same inputs,
// same output, always.
func Combine(heuristic, model int, heuristicW, modelW float64) int {
	return int(math.Round(heuristicW*float64(heuristic) + modelW*float64(model)))
}

func (s *Scorer) modelScore(ctx context.Context, draft types.ScriptDraft) (*modelVerdict, error) {
	raw, err := s.llm.Complete(ctx, llm.RoleValidator, llm.Request{
		System: s.rubricPrompt(),
		User: fmt.Sprintf("Analyze this script for %s brand voice consistency:\n\n%s\n\nProvide detailed feedback.",
			s.prof.ChannelName, draft.Text),
	})
	if err != nil {
		return nil, err
	}
	var verdict modelVerdict
	if err := llm.DecodeJSON(raw, &verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}

// rubricPrompt derives the scoring rubric from the style profile.
func (s *Scorer) rubricPrompt() string {
	profileJSON, _ := json.MarshalIndent(s.prof, "", "  ")
	return fmt.Sprintf(`You are a brand voice expert analyzing YouTube scripts.

Analyzing script for: %s

Channel characteristics:
%s

Analyze the script and respond with ONLY valid JSON — no markdown, no explanation — with exactly these fields:
- "score": integer 0-100 for how well the script matches %s's style
- "reasoning": clear reasoning for your score
- "strengths": array of strings (what works well)
- "weaknesses": array of strings (what doesn't match)
- "suggestions": array of strings (actionable improvements)

Be precise and honest in your assessment.`,
		s.prof.ChannelName, profileJSON, s.prof.ChannelName)
}

func (s *Scorer) logVerdict(score types.ValidationScore) {
	suffix := ""
	if score.Degraded {
		suffix = " [degraded]"
	}
	log.Printf("[scorer] Score: %d/100 (heuristic: %d, model: %d)%s",
		score.Combined, score.HeuristicScore, score.ModelScore, suffix)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func dedupe(feedback []string) []string {
	seen := make(map[string]bool, len(feedback))
	var out []string
	for _, f := range feedback {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

func capFeedback(feedback []string) []string {
	if len(feedback) > maxFeedback {
		return feedback[:maxFeedback]
	}
	return feedback
}
