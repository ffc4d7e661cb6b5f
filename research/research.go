package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sinu-sinu/content-automation-ai/config"
	"github.com/sinu-sinu/content-automation-ai/llm"
	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/types"
)

// fallbackTopic is used when every trending source and the cache come up empty
const fallbackTopic = "The Latest JavaScript Framework Nobody Asked For"

// Scout researches topics for a channel: it discovers trending candidates,
// picks the best fit and compiles a research brief via the scout model.
type Scout struct {
	cfg         *config.Config
	llm         llm.Client
	prof        *profile.StyleProfile
	httpClient  *http.Client
	fixtureMode bool
}

// New creates a Scout for one channel.
func New(cfg *config.Config, client llm.Client, prof *profile.StyleProfile, fixtureMode bool) *Scout {
	return &Scout{
		cfg:         cfg,
		llm:         client,
		prof:        prof,
		httpClient:  &http.Client{Timeout: time.Duration(cfg.Research.SourceTimeoutSec) * time.Second},
		fixtureMode: fixtureMode,
	}
}

// FetchBrief researches the given topic, auto-discovering one from trending
// sources when topic is empty.
func (s *Scout) FetchBrief(ctx context.Context, topic types.Topic) (*types.ResearchBrief, error) {
	mode := "live"
	if s.fixtureMode {
		mode = "cached"
	}

	if topic.Title == "" {
		log.Printf("[research] Auto-discovering trending topics for %s...", s.prof.ChannelName)
		items, itemsMode := s.trendingSafe(ctx)
		mode = itemsMode

		selected, err := s.selectBestTopic(ctx, items)
		if err != nil {
			return nil, fmt.Errorf("topic selection: %w", err)
		}
		topic = types.Topic{Title: selected, Origin: types.OriginDiscovered}
		log.Printf("[research] Selected topic: %q", topic.Title)
	}

	log.Printf("[research] Researching %q...", topic.Title)
	brief, err := s.llm.Complete(ctx, llm.RoleScout, llm.Request{
		System: s.systemPrompt(),
		User:   s.researchPrompt(topic.Title),
	})
	if err != nil {
		return nil, fmt.Errorf("research brief: %w", err)
	}

	log.Println("[research] ✅ Research complete")
	return &types.ResearchBrief{
		Topic: topic,
		Brief: brief,
		Mode:  mode,
	}, nil
}

// trendingSafe gathers candidates from the configured live sources, falling
// back to the cached fixture file on failure. Never returns an error: topic
// discovery degrades, it does not abort the run.
func (s *Scout) trendingSafe(ctx context.Context) ([]types.TrendingItem, string) {
	if s.fixtureMode {
		log.Println("[research] Fixture mode: using cached trending topics")
		return s.loadCachedTrending(), "cached"
	}

	var items []types.TrendingItem
	limit := s.cfg.Research.TrendingLimit

	for _, source := range s.cfg.Research.Sources {
		srcCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Research.SourceTimeoutSec)*time.Second)
		var (
			found []types.TrendingItem
			err   error
		)
		switch source {
		case "hackernews":
			found, err = s.fetchHackerNews(srcCtx, limit)
		case "reddit":
			found, err = s.fetchReddit(srcCtx, limit)
		case "youtube":
			found, err = s.fetchYouTube(srcCtx, limit)
		default:
			err = fmt.Errorf("unknown trending source %q", source)
		}
		cancel()

		if err != nil {
			log.Printf("[research] %s source warning: %v", source, err)
			continue
		}
		items = append(items, found...)
		log.Printf("[research] %s: found %d candidates", source, len(found))
	}

	if len(items) == 0 {
		log.Println("[research] No live trending data, using cached topics")
		return s.loadCachedTrending(), "cached"
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, "live"
}

// loadCachedTrending reads the pre-recorded trending fixture. Missing or
// invalid cache yields an empty list; selectBestTopic then falls back to the
// evergreen topic.
func (s *Scout) loadCachedTrending() []types.TrendingItem {
	data, err := os.ReadFile(s.cfg.Paths.TrendingCache)
	if err != nil {
		log.Printf("[research] Cache read warning: %v", err)
		return nil
	}
	var items []types.TrendingItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[research] Cache parse warning: %v", err)
		return nil
	}
	log.Printf("[research] Loaded %d cached trends", len(items))
	return items
}

// selectBestTopic asks the scout model to pick the single best candidate.
func (s *Scout) selectBestTopic(ctx context.Context, items []types.TrendingItem) (string, error) {
	if len(items) == 0 {
		return fallbackTopic, nil
	}

	var sb strings.Builder
	for i, item := range items {
		fmt.Fprintf(&sb, "%d. %s (score: %d, source: %s)\n", i+1, item.Title, item.Score, item.Source)
	}

	prompt := fmt.Sprintf(`From these trending topics, pick the ONE that would make the best %s video. Consider:
- Audience relevance and interest
- Humor or hot-take potential
- Timing (breaking news vs. timeless)
- How well it fits the channel's voice: %s

Topics:
%s
Respond with ONLY the topic title, exactly as written above, nothing else.`,
		s.prof.ChannelName, strings.Join(s.prof.Tone, ", "), sb.String())

	selected, err := s.llm.Complete(ctx, llm.RoleScout, llm.Request{
		System: fmt.Sprintf("You are a topic selector for %s. Pick topics that align with the channel's voice and its audience's interests.", s.prof.ChannelName),
		User:   prompt,
	})
	if err != nil {
		return "", err
	}
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return fallbackTopic, nil
	}
	return selected, nil
}

func (s *Scout) systemPrompt() string {
	var phrases string
	if len(s.prof.SignaturePhrases) > 0 {
		phrases = strings.Join(s.prof.SignaturePhrases[:min(3, len(s.prof.SignaturePhrases))], ", ")
	}
	return fmt.Sprintf(`You are a trend scout for %s, a YouTube channel. Your job is to find interesting topics its audience will love.

Brand Voice: %s
Humor Style: %s
Signature Phrases: %s

Format your research brief with:
1. Topic summary (2-3 sentences)
2. Why it's interesting for the audience
3. Key talking points (3-5 bullet points)
4. Suggested angle (hot take or educational)
5. Relevant examples or tools mentioned`,
		s.prof.ChannelName,
		strings.Join(s.prof.Tone, ", "),
		strings.Join(s.prof.HumorTypes, ", "),
		phrases)
}

func (s *Scout) researchPrompt(topic string) string {
	return fmt.Sprintf(`Research this topic for a %s video: %s

Provide:
- Core concept explanation (what is this?)
- Why the audience should care
- Controversial or funny angles
- Key technical details
- Similar or related topics`, s.prof.ChannelName, topic)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
