package scorer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/types"
)

// Heuristic check weights. They must sum to 100; the test suite asserts it.
const (
	weightPacing     = 30 // average sentence length inside the profile window
	weightSignature  = 20 // signature phrases present
	weightAvoided    = 20 // avoided terms absent
	weightStructure  = 20 // timestamp sections and B-roll block present
	weightMinLength  = 10 // enough material to fill the format
	minDraftWords    = 50
	signatureTarget  = 2 // phrases needed for full signature credit
)

var sectionHeader = regexp.MustCompile(`(?m)^\[[\d:]+-[\d:X-Z]+\]`)

// checkResult is one heuristic check's contribution.
type checkResult struct {
	earned   int
	feedback string // empty when the check fully passed
}

// heuristicScore runs the deterministic pattern checks against the profile.
// Returns the 0-100 sub-score plus feedback for every check that fell short.
func heuristicScore(draft types.ScriptDraft, p *profile.StyleProfile) (int, []string) {
	checks := []checkResult{
		checkPacing(draft.Text, p),
		checkSignaturePhrases(draft.Text, p),
		checkAvoidedTerms(draft.Text, p),
		checkStructure(draft.Text),
		checkMinLength(draft),
	}

	score := 0
	var feedback []string
	for _, c := range checks {
		score += c.earned
		if c.feedback != "" {
			feedback = append(feedback, c.feedback)
		}
	}
	return score, feedback
}

func checkPacing(text string, p *profile.StyleProfile) checkResult {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return checkResult{0, "script has no sentences to pace-check"}
	}
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	avg := float64(total) / float64(len(sentences))

	lo, hi := float64(p.SentenceLength.Min), float64(p.SentenceLength.Max)
	if avg >= lo && avg <= hi {
		return checkResult{weightPacing, ""}
	}
	if avg > hi {
		return checkResult{0, fmt.Sprintf("sentences average %.0f words; shorten them to %d-%d for the channel's pacing", avg, p.SentenceLength.Min, p.SentenceLength.Max)}
	}
	return checkResult{0, fmt.Sprintf("sentences average %.0f words; too choppy, aim for %d-%d", avg, p.SentenceLength.Min, p.SentenceLength.Max)}
}

func checkSignaturePhrases(text string, p *profile.StyleProfile) checkResult {
	if len(p.SignaturePhrases) == 0 {
		return checkResult{weightSignature, ""}
	}
	lower := strings.ToLower(text)
	found := 0
	for _, phrase := range p.SignaturePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			found++
		}
	}
	if found >= signatureTarget {
		return checkResult{weightSignature, ""}
	}
	earned := weightSignature * found / signatureTarget
	return checkResult{earned, fmt.Sprintf("work in signature phrases naturally (e.g. %q)", p.SignaturePhrases[0])}
}

func checkAvoidedTerms(text string, p *profile.StyleProfile) checkResult {
	lower := strings.ToLower(text)
	var hits []string
	for _, term := range p.Avoid {
		if strings.Contains(lower, strings.ToLower(term)) {
			hits = append(hits, term)
		}
	}
	if len(hits) == 0 {
		return checkResult{weightAvoided, ""}
	}
	// each hit costs a share of the weight
	penalty := weightAvoided * len(hits) / max(len(p.Avoid), 1)
	earned := weightAvoided - penalty
	if earned < 0 {
		earned = 0
	}
	return checkResult{earned, fmt.Sprintf("remove avoided terms: %s", strings.Join(hits, ", "))}
}

func checkStructure(text string) checkResult {
	headers := len(sectionHeader.FindAllString(text, -1))
	hasBRoll := strings.Contains(strings.ToUpper(text), "B-ROLL")

	switch {
	case headers >= 3 && hasBRoll:
		return checkResult{weightStructure, ""}
	case headers >= 3:
		return checkResult{weightStructure / 2, "add a B-ROLL SUGGESTIONS section"}
	default:
		return checkResult{0, "structure the script with [m:ss-m:ss] timestamp sections per the template"}
	}
}

func checkMinLength(draft types.ScriptDraft) checkResult {
	if draft.WordCount >= minDraftWords {
		return checkResult{weightMinLength, ""}
	}
	return checkResult{0, fmt.Sprintf("script is too short (%d words); flesh out the core sections", draft.WordCount)}
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	var sentences []string
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
