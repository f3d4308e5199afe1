package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/velahq/vela/internal/core"
)

type Fetch struct {
	client *http.Client
}

func NewFetch() *Fetch {
	return &Fetch{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (f *Fetch) FetchURL(ctx context.Context, params map[string]any) (any, error) {
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return nil, fmt.Errorf("missing required parameter: url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Mimic a browser to avoid some basic blocking
	req.Header.Set("User-Agent", core.VelaUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return string(body), nil
}
