package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/velahq/vela/internal/core"
)

// Search runs a web query against DuckDuckGo's HTML endpoint and hands
// the raw page back for the model to digest.
type Search struct {
	client  *http.Client
	baseURL string
}

func NewSearch() *Search {
	return &Search{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://duckduckgo.com/html/",
	}
}

func (s *Search) Query(ctx context.Context, params map[string]any) (any, error) {
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("missing required parameter: query")
	}

	endpoint := s.baseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", core.VelaUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}

	return string(body), nil
}
