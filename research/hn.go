package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sinu-sinu/content-automation-ai/types"
)

const hnBaseURL = "https://hacker-news.firebaseio.com/v0"

type hnItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score"`
	URL   string `json:"url"`
}

// fetchHackerNews pulls the current top stories from the official
// HackerNews Firebase API.
func (s *Scout) fetchHackerNews(ctx context.Context, limit int) ([]types.TrendingItem, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", hnBaseURL+"/topstories.json", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hackernews topstories: %w", err)
	}
	defer resp.Body.Close()

	var ids []int
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("parse topstories: %w", err)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	var items []types.TrendingItem
	for _, id := range ids {
		item, err := s.fetchHNItem(ctx, id)
		if err != nil {
			continue // skip deleted or unreachable stories
		}
		if item.Title == "" {
			continue
		}
		items = append(items, types.TrendingItem{
			ID:     fmt.Sprintf("hn_%d", item.ID),
			Title:  item.Title,
			Score:  item.Score,
			URL:    item.URL,
			Source: "hackernews",
		})
	}
	return items, nil
}

func (s *Scout) fetchHNItem(ctx context.Context, id int) (*hnItem, error) {
	url := fmt.Sprintf("%s/item/%d.json", hnBaseURL, id)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var item hnItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}
