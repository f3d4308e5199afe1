package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/velahq/vela/pkg/retry"
)

const defaultHeadlineCount = 5

// News pulls current top headlines from the Hacker News firebase API.
type News struct {
	client  *http.Client
	retrier *retry.Retrier
	baseURL string
}

func NewNews() *News {
	return &News{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
		baseURL: "https://hacker-news.firebaseio.com/v0",
	}
}

func (n *News) Headlines(ctx context.Context, params map[string]any) (any, error) {
	count := defaultHeadlineCount
	if c, ok := params["count"].(float64); ok && c > 0 {
		count = int(c)
	}

	var ids []int64
	err := n.retrier.Do(ctx, func() error {
		return n.getJSON(ctx, n.baseURL+"/topstories.json", &ids)
	})
	if err != nil {
		return nil, fmt.Errorf("headline list failed: %w", err)
	}

	if count > len(ids) {
		count = len(ids)
	}

	headlines := make([]string, 0, count)
	for _, id := range ids[:count] {
		var item struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		}
		if err := n.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", n.baseURL, id), &item); err != nil {
			return nil, fmt.Errorf("headline item failed: %w", err)
		}
		headlines = append(headlines, item.Title)
	}

	return headlines, nil
}

func (n *News) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("news service returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
