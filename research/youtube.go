package research

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/sinu-sinu/content-automation-ai/types"
)

// fetchYouTube pulls the mostPopular chart for the configured region and
// category via the Data API v3. Auth prefers an OAuth refresh token
// (YOUTUBE_CLIENT_ID/SECRET/REFRESH_TOKEN) and falls back to a plain API key
// (YOUTUBE_API_KEY).
func (s *Scout) fetchYouTube(ctx context.Context, limit int) ([]types.TrendingItem, error) {
	svc, err := s.youtubeService(ctx)
	if err != nil {
		return nil, err
	}

	call := svc.Videos.List([]string{"snippet", "statistics"}).
		Chart("mostPopular").
		RegionCode(s.cfg.Research.YouTubeRegion).
		VideoCategoryId(s.cfg.Research.YouTubeCategory).
		MaxResults(int64(limit))

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube mostPopular: %w", err)
	}

	var items []types.TrendingItem
	for _, v := range resp.Items {
		if v.Snippet == nil || v.Snippet.Title == "" {
			continue
		}
		score := 0
		if v.Statistics != nil {
			// view counts dwarf HN/Reddit scores; scale down so sources rank together
			score = int(v.Statistics.ViewCount / 1000)
		}
		items = append(items, types.TrendingItem{
			ID:     fmt.Sprintf("yt_%s", v.Id),
			Title:  v.Snippet.Title,
			Score:  score,
			URL:    "https://www.youtube.com/watch?v=" + v.Id,
			Source: "youtube",
		})
	}
	return items, nil
}

func (s *Scout) youtubeService(ctx context.Context) (*youtube.Service, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")

	if clientID != "" && clientSecret != "" && refreshToken != "" {
		conf := &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{youtube.YoutubeReadonlyScope},
		}
		token := &oauth2.Token{
			RefreshToken: refreshToken,
			Expiry:       time.Now().Add(-time.Hour), // force refresh
		}
		return youtube.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, token)))
	}

	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("no YouTube credentials: set YOUTUBE_API_KEY or the OAuth trio")
	}
	return youtube.NewService(ctx, option.WithAPIKey(apiKey))
}
