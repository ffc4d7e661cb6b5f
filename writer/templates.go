package writer

// Script formats. Unknown formats fall back to Format100Seconds.
const (
	Format100Seconds = "100_seconds"
	FormatCodeReport = "code_report"
	FormatTutorial   = "tutorial"
)

// Formats lists the supported format selectors.
var Formats = []string{Format100Seconds, FormatCodeReport, FormatTutorial}

// templateFor returns the structure template for a format.
func templateFor(format string) string {
	switch format {
	case FormatCodeReport:
		return codeReportTemplate
	case FormatTutorial:
		return tutorialTemplate
	default:
		return hundredSecondsTemplate
	}
}

// NormalizeFormat maps any input to a supported format selector.
func NormalizeFormat(format string) string {
	for _, f := range Formats {
		if format == f {
			return f
		}
	}
	return Format100Seconds
}

const hundredSecondsTemplate = `[0:00-0:05] HOOK

State something obvious in a deadpan way. Grab attention immediately.
Single punchy sentence.


[0:05-0:20] SETUP

What is this thing? Why should you care? Add light sarcasm here.
2-3 sentences with quick context.


[0:20-1:20] CORE

Present 3-5 key points. For each point:
- Feature explanation (2-3 seconds)
- Reality check / sarcastic undercut (1-2 seconds)
- Code example or visual idea (2-3 seconds)

Use proper markdown for any code blocks.


[1:20-1:35] CONCLUSION

Prediction with twist ending. Hot take or surprising angle.


[1:35-1:45] CTA

"Like and subscribe" theme, written in the topic's style. Make it clever.


---

**B-ROLL SUGGESTIONS:**
- Code editor with syntax highlighting
- Terminal output or compilation
- Relevant diagrams or animations`

const codeReportTemplate = `[0:00-0:15] HOOK

Breaking news style delivery. Deadpan announcement. Tease the topic with a
bold statement in 2-3 punchy sentences.


[0:15-0:45] CONTEXT

Background: what led to this, why it matters now, who's behind it, what
problem it solves. 3-4 sentences.


[0:45-1:15] THE BASICS

Core concept explanation. Quick comparison to alternatives. Include a simple
code example if relevant.


[1:15-3:15] DEEP DIVE

Technical breakdown in 6-10 key points: code examples in markdown blocks,
reality checks, trade-offs and gotchas, edge cases. Each point 10-20 seconds.


[3:15-3:45] PRACTICAL USE CASES

When to use it (and when NOT to). Who's already running it in production.


[3:45-4:15] HOT TAKES & PREDICTIONS

Community reactions and drama. Predictions for success or failure.


[4:15-4:30] WRAP UP

Final verdict with twist. One-liner summary. Callback to the hook.


[4:30-4:45] CTA

Topic-relevant call to action, written in the topic's language or style.


---

**B-ROLL SUGGESTIONS:**
- Code editor with real examples
- GitHub screenshots
- Architecture diagrams
- Benchmarks or side-by-side comparisons`

const tutorialTemplate = `[0:00-0:10] HOOK

What you'll learn. Why it's useful. Time commitment.


[0:10-0:30] PREREQUISITES

What you need to know, tools required, assumed skill level.


[0:30-X] MAIN CONTENT

Step-by-step progression. For each step:
1. Explain the concept (what and why)
2. Show the code (markdown code blocks)
3. Highlight the key point or gotcha

Keep pace brisk. Include common mistakes and how to avoid them.


[X-Y] TIPS & TRICKS

Advanced variations, performance considerations, best practices.


[Y-Z] SUMMARY & CTA

Key takeaways (3-5 points). Like and subscribe with a topic-relevant twist.


---

**B-ROLL SUGGESTIONS:**
- Live coding walkthrough
- Output/results visualization
- Before/after comparisons`
