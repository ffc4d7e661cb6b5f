package writer

import (
	"regexp"
	"strings"
)

var (
	timestampHeader = regexp.MustCompile(`^\[[\d:]+-[\d:]+\]`)
	looseCodeFence  = regexp.MustCompile("```(\\w+)?[ \t]*\n")
	excessNewlines  = regexp.MustCompile(`\n{4,}`)
)

// cleanFormatting normalizes a raw model script: exactly two blank lines
// after every timestamp header, tidy code fences, at most three consecutive
// newlines, no trailing whitespace.
func cleanFormatting(script string) string {
	lines := strings.Split(script, "\n")
	var cleaned []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if timestampHeader.MatchString(strings.TrimSpace(line)) {
			cleaned = append(cleaned, line, "", "")
			// skip the blank lines the model already emitted
			for i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "" {
				i++
			}
			continue
		}
		cleaned = append(cleaned, line)
	}

	out := strings.Join(cleaned, "\n")
	out = looseCodeFence.ReplaceAllString(out, "```$1\n")
	out = excessNewlines.ReplaceAllString(out, "\n\n\n")

	lines = strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.Join(lines, "\n")
}
