package scorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinu-sinu/content-automation-ai/config"
	"github.com/sinu-sinu/content-automation-ai/llm"
	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/types"
)

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) Complete(ctx context.Context, role llm.Role, req llm.Request) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func verdictJSON(score int, weaknesses, suggestions []string) string {
	v := modelVerdict{Score: score, Reasoning: "matched the channel voice", Weaknesses: weaknesses, Suggestions: suggestions}
	data, _ := json.Marshal(v)
	return string(data)
}

func testProfile() *profile.StyleProfile {
	return &profile.StyleProfile{
		ChannelName:      "fireship",
		SignaturePhrases: []string{"in 100 seconds", "but wait"},
		Avoid:            []string{"subscribe", "smash that like button"},
		SentenceLength:   profile.SentenceBounds{Min: 5, Max: 15},
		Threshold:        75,
		MaxRefinements:   2,
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Workflow.RetryBackoffMs = 1
	return cfg
}

// onVoiceScript satisfies every heuristic check for testProfile.
const onVoiceScript = `[0:00-0:10] Go generics in 100 seconds. They landed after a decade of debate. Here is why they matter for real code.

[0:10-0:40] Type parameters let one function work over many types. The compiler checks everything up front. But wait, there is a catch with constraints. You declare them with interfaces that list type sets.

[0:40-1:40] In practice you reach for them in container and utility code. Most application code never needs a single type parameter.

B-ROLL SUGGESTIONS:
- compiler output scrolling past
- gopher juggling three type boxes`

func onVoiceDraft() types.ScriptDraft {
	return types.NewScriptDraft(1, "100_seconds", onVoiceScript)
}

func TestHeuristicWeightsSumToHundred(t *testing.T) {
	assert.Equal(t, 100, weightPacing+weightSignature+weightAvoided+weightStructure+weightMinLength)
}

func TestHeuristicPerfectScript(t *testing.T) {
	score, feedback := heuristicScore(onVoiceDraft(), testProfile())
	assert.Equal(t, 100, score)
	assert.Empty(t, feedback)
}

func TestHeuristicPenalizesAvoidedTerms(t *testing.T) {
	text := onVoiceScript + "\n\nDon't forget to subscribe."
	score, feedback := heuristicScore(types.NewScriptDraft(1, "100_seconds", text), testProfile())

	assert.Less(t, score, 100)
	require.NotEmpty(t, feedback)
	assert.Contains(t, strings.Join(feedback, " "), "subscribe")
}

func TestHeuristicPenalizesShortScript(t *testing.T) {
	draft := types.NewScriptDraft(1, "100_seconds", "[0:00-0:10] Too short. But wait, in 100 seconds.\n[0:10-0:20] Yes.\n[0:20-0:30] B-ROLL here.")
	score, feedback := heuristicScore(draft, testProfile())

	assert.LessOrEqual(t, score, 100-weightMinLength)
	assert.Contains(t, strings.Join(feedback, " "), "too short")
}

func TestHeuristicHalfStructureCreditWithoutBRoll(t *testing.T) {
	text := strings.ReplaceAll(onVoiceScript, "B-ROLL SUGGESTIONS:", "Visual ideas:")
	score, feedback := heuristicScore(types.NewScriptDraft(1, "100_seconds", text), testProfile())

	assert.Equal(t, 100-weightStructure/2, score)
	assert.Contains(t, strings.Join(feedback, " "), "B-ROLL")
}

func TestHeuristicNoStructureCreditWithoutHeaders(t *testing.T) {
	text := sectionHeader.ReplaceAllString(onVoiceScript, "")
	score, _ := heuristicScore(types.NewScriptDraft(1, "100_seconds", text), testProfile())

	assert.LessOrEqual(t, score, 100-weightStructure)
}

func TestCombineIsDeterministicAndRounds(t *testing.T) {
	assert.Equal(t, 70, Combine(80, 60, 0.5, 0.5))
	assert.Equal(t, 71, Combine(71, 70, 0.5, 0.5)) // 70.5 rounds up
	assert.Equal(t, 80, Combine(80, 0, 1.0, 0))    // degraded form

	// pure: repeated calls agree
	for i := 0; i < 5; i++ {
		assert.Equal(t, Combine(63, 87, 0.5, 0.5), Combine(63, 87, 0.5, 0.5))
	}
}

func TestScoreBlendsHeuristicAndModel(t *testing.T) {
	client := &stubLLM{response: verdictJSON(90, nil, nil)}
	s := New(testConfig(), client, testProfile())

	score, err := s.Score(context.Background(), onVoiceDraft())
	require.NoError(t, err)

	assert.Equal(t, 100, score.HeuristicScore)
	assert.Equal(t, 90, score.ModelScore)
	assert.Equal(t, 95, score.Combined)
	assert.True(t, score.Passed)
	assert.False(t, score.Degraded)
	assert.Equal(t, 1, score.DraftVersion)
}

func TestScoreClampsModelScore(t *testing.T) {
	client := &stubLLM{response: verdictJSON(150, nil, nil)}
	s := New(testConfig(), client, testProfile())

	score, err := s.Score(context.Background(), onVoiceDraft())
	require.NoError(t, err)
	assert.Equal(t, 100, score.ModelScore)

	client.response = verdictJSON(-5, nil, nil)
	score, err = s.Score(context.Background(), onVoiceDraft())
	require.NoError(t, err)
	assert.Equal(t, 0, score.ModelScore)
}

func TestScoreDegradesWhenModelUnavailable(t *testing.T) {
	cfg := testConfig()
	client := &stubLLM{err: errors.New("connection refused")}
	s := New(cfg, client, testProfile())

	score, err := s.Score(context.Background(), onVoiceDraft())
	require.NoError(t, err) // degraded is a result, not an error

	assert.True(t, score.Degraded)
	assert.Equal(t, 100, score.HeuristicScore)
	assert.Zero(t, score.ModelScore)
	assert.Equal(t, score.HeuristicScore, score.Combined)
	assert.True(t, score.Passed)
	// the model call was retried before degrading
	assert.Equal(t, cfg.Workflow.LocalRetryAttempts, client.calls)
}

func TestScoreDegradesOnMalformedVerdict(t *testing.T) {
	client := &stubLLM{response: "I would rate this script very highly!"}
	s := New(testConfig(), client, testProfile())

	score, err := s.Score(context.Background(), onVoiceDraft())
	require.NoError(t, err)
	assert.True(t, score.Degraded)
}

func TestScorePropagatesCancellation(t *testing.T) {
	client := &stubLLM{err: errors.New("connection refused")}
	s := New(testConfig(), client, testProfile())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Score(ctx, onVoiceDraft())
	require.ErrorIs(t, err, context.Canceled)
}

func TestScoreDedupesAndCapsFeedback(t *testing.T) {
	weaknesses := []string{"hook is weak", "Hook is weak", "pacing drags"}
	var suggestions []string
	for i := 0; i < 10; i++ {
		suggestions = append(suggestions, fmt.Sprintf("suggestion %d", i))
	}
	client := &stubLLM{response: verdictJSON(40, weaknesses, suggestions)}
	s := New(testConfig(), client, testProfile())

	score, err := s.Score(context.Background(), onVoiceDraft())
	require.NoError(t, err)

	assert.LessOrEqual(t, len(score.Feedback), maxFeedback)
	// case-insensitive duplicate collapsed
	count := 0
	for _, f := range score.Feedback {
		if strings.EqualFold(f, "hook is weak") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestScoreFailsThresholdWhenBlendTooLow(t *testing.T) {
	client := &stubLLM{response: verdictJSON(20, []string{"off voice"}, nil)}
	s := New(testConfig(), client, testProfile())

	score, err := s.Score(context.Background(), onVoiceDraft())
	require.NoError(t, err)

	assert.Equal(t, 60, score.Combined)
	assert.False(t, score.Passed)
	assert.NotEmpty(t, score.Feedback)
}
