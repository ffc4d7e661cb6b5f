// Package metadata turns a finished script into YouTube upload metadata.
// It runs after a succeeded workflow only and its failure never changes the
// run's terminal status.
package metadata

import (
	"context"
	"fmt"
	"log"

	"github.com/sinu-sinu/content-automation-ai/llm"
	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/types"
)

const titleMaxChars = 70

const systemPrompt = `You are an expert YouTube SEO strategist.
Generate compelling metadata that maximizes click-through rate and search ranking.

You MUST respond with ONLY valid JSON — no markdown, no explanation, no preamble.

The JSON must have exactly these fields:
- "title": string (max 70 chars, click-worthy but honest)
- "description": string (~300 words, SEO-rich, includes a channel CTA)
- "tags": array of up to 30 strings (mix of broad and specific tags)
- "thumbnail_prompt": string (detailed prompt for an eye-catching thumbnail image)`

// Generator creates YouTube metadata for a finished script.
type Generator struct {
	llm  llm.Client
	prof *profile.StyleProfile
}

// New creates a metadata Generator.
func New(client llm.Client, prof *profile.StyleProfile) *Generator {
	return &Generator{llm: client, prof: prof}
}

// Run generates title, description, tags and a thumbnail prompt.
func (g *Generator) Run(ctx context.Context, topic types.Topic, draft types.ScriptDraft) (*types.VideoMetadata, error) {
	log.Println("[metadata] Generating YouTube metadata...")

	user := fmt.Sprintf(`Generate YouTube metadata for this %s video.

TOPIC: %s

SCRIPT:
%s`, g.prof.ChannelName, topic.Title, draft.Text)

	raw, err := g.llm.Complete(ctx, llm.RoleMetadata, llm.Request{System: systemPrompt, User: user})
	if err != nil {
		return nil, fmt.Errorf("metadata generation: %w", err)
	}

	var meta types.VideoMetadata
	if err := llm.DecodeJSON(raw, &meta); err != nil {
		return nil, fmt.Errorf("metadata generation: %w", err)
	}

	if len(meta.Title) > titleMaxChars {
		meta.Title = meta.Title[:titleMaxChars-3] + "..."
	}
	if len(meta.Tags) > 30 {
		meta.Tags = meta.Tags[:30]
	}

	log.Printf("[metadata] ✅ Metadata ready: %q (%d tags)", meta.Title, len(meta.Tags))
	return &meta, nil
}
