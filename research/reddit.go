package research

import (
	"context"
	"fmt"
	"log"

	"github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/sinu-sinu/content-automation-ai/types"
)

// fetchReddit pulls hot posts from the configured subreddits through the
// read-only Reddit client. Per-subreddit failures are logged and skipped.
func (s *Scout) fetchReddit(ctx context.Context, limit int) ([]types.TrendingItem, error) {
	client, err := reddit.NewReadonlyClient()
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}

	var items []types.TrendingItem
	for _, sub := range s.cfg.Research.Subreddits {
		posts, _, err := client.Subreddit.HotPosts(ctx, sub, &reddit.ListOptions{Limit: limit})
		if err != nil {
			log.Printf("[research] Reddit r/%s error: %v", sub, err)
			continue
		}
		for _, post := range posts {
			if post.Title == "" || post.Stickied {
				continue
			}
			items = append(items, types.TrendingItem{
				ID:     fmt.Sprintf("reddit_%s", post.ID),
				Title:  post.Title,
				Score:  post.Score,
				URL:    "https://www.reddit.com" + post.Permalink,
				Source: fmt.Sprintf("r/%s", sub),
			})
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no posts from any configured subreddit")
	}
	return items, nil
}
