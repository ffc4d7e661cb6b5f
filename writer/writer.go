package writer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sinu-sinu/content-automation-ai/llm"
	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/types"
)

// Generator produces script drafts in a channel's voice using few-shot
// prompting. The same Generator handles both the initial draft and
// regenerate-with-feedback refinements.
type Generator struct {
	llm  llm.Client
	prof *profile.StyleProfile
}

// New creates a Generator for one channel.
func New(client llm.Client, prof *profile.StyleProfile) *Generator {
	return &Generator{llm: client, prof: prof}
}

// Generate writes a new draft version. When prior is nil this is the initial
// draft from the research brief; otherwise the prior draft plus the scorer's
// feedback drive a refinement pass.
func (g *Generator) Generate(ctx context.Context, brief *types.ResearchBrief, prior *types.ScriptDraft, feedback []string, format string) (types.ScriptDraft, error) {
	format = NormalizeFormat(format)

	version := 1
	var user string
	if prior == nil {
		log.Printf("[writer] Generating %s script...", format)
		user = draftPrompt(g.prof, brief, format)
	} else {
		version = prior.Version + 1
		log.Printf("[writer] Refining script (v%d)...", version)
		user = refinePrompt(g.prof, *prior, feedback, format)
	}

	raw, err := g.llm.Complete(ctx, llm.RoleWriter, llm.Request{
		System: systemPrompt(g.prof),
		User:   user,
	})
	if err != nil {
		return types.ScriptDraft{}, fmt.Errorf("generate script: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return types.ScriptDraft{}, fmt.Errorf("generate script: %w: empty script", llm.ErrInvalidResponse)
	}

	draft := types.NewScriptDraft(version, format, cleanFormatting(raw))
	log.Printf("[writer] ✅ Script v%d ready: %d words, ~%.0f seconds",
		draft.Version, draft.WordCount, draft.EstimatedSec)
	return draft, nil
}
