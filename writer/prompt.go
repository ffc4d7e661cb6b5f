package writer

import (
	"fmt"
	"strings"

	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/types"
)

// systemPrompt builds the writer system prompt from the style profile.
// Real excerpt examples carry the voice better than adjectives do, so the
// profile's examples are embedded verbatim as few-shot material.
func systemPrompt(p *profile.StyleProfile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a scriptwriter for %s, a YouTube channel.\n\n", p.ChannelName)

	if len(p.Examples) > 0 {
		fmt.Fprintf(&sb, "CRITICAL: Study these REAL %s examples to understand the tone and rhythm.\n", p.ChannelName)
		sb.WriteString("These are NOT descriptions - they are actual script excerpts you MUST mimic:\n\n")
		for i, ex := range p.Examples {
			fmt.Fprintf(&sb, "EXAMPLE %d:\n%q\n\n", i+1, ex)
		}
	}

	sb.WriteString("VOICE CHARACTERISTICS:\n")
	fmt.Fprintf(&sb, "- Tone: %s\n", strings.Join(p.Tone, ", "))
	fmt.Fprintf(&sb, "- Pacing: %s\n", p.Pacing)
	fmt.Fprintf(&sb, "- Sentence length: %d-%d words (short and punchy)\n",
		p.SentenceLength.Min, p.SentenceLength.Max)

	if len(p.SignaturePhrases) > 0 {
		sb.WriteString("\nSIGNATURE PHRASES (use sparingly and naturally):\n")
		fmt.Fprintf(&sb, "%s\n", strings.Join(p.SignaturePhrases, ", "))
	}
	if len(p.Avoid) > 0 {
		sb.WriteString("\nAVOID AT ALL COSTS:\n")
		fmt.Fprintf(&sb, "%s\n", strings.Join(p.Avoid, ", "))
	}

	sb.WriteString(`
CRITICAL INSTRUCTIONS:
1. Mimic the TIMING and SENTENCE STRUCTURE from the examples, not just the words
2. The humor comes from the rhythm and pacing, not forced jokes
3. Use short, declarative sentences
4. Undercut confidence with reality checks
5. Include code examples with sarcastic inline comments where relevant
6. Include B-ROLL SUGGESTIONS for visuals
7. Keep energy high and pacing fast`)

	return sb.String()
}

// draftPrompt is the user message for an initial draft.
func draftPrompt(p *profile.StyleProfile, brief *types.ResearchBrief, format string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a %s script using this research:\n\n", p.ChannelName)
	fmt.Fprintf(&sb, "RESEARCH BRIEF:\n%s\n\n", brief.Brief)
	fmt.Fprintf(&sb, "FORMAT: %s\nTEMPLATE STRUCTURE:\n%s\n\n", format, templateFor(format))
	sb.WriteString(formattingRules)
	return sb.String()
}

// refinePrompt is the user message for a regenerate-with-feedback pass. It
// carries the prior draft and the scorer's feedback forward.
func refinePrompt(p *profile.StyleProfile, prior types.ScriptDraft, feedback []string, format string) string {
	var sb strings.Builder
	sb.WriteString("Previous script feedback:\n\n")
	for _, f := range feedback {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	fmt.Fprintf(&sb, "\nOriginal script to refine:\n%s\n\n", prior.Text)
	sb.WriteString("Refine the script addressing ALL the feedback above. ")
	fmt.Fprintf(&sb, "Keep it a %s script in the %s format:\n%s\n\n", p.ChannelName, format, templateFor(format))
	sb.WriteString(formattingRules)
	return sb.String()
}

const formattingRules = `FORMATTING REQUIREMENTS (CRITICAL):
- Follow the template structure with exact timestamps
- Put TWO blank lines after each timestamp header (e.g. [0:00-0:15] HOOK)
- Use markdown code fences for code blocks
- Use **bold** for emphasis
- Separate sections with blank lines

Write the COMPLETE script now with proper formatting:`
