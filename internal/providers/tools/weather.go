package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/velahq/vela/internal/core"
	"github.com/velahq/vela/pkg/retry"
)

// Weather answers current-conditions lookups through wttr.in. It is
// integration glue over the dispatcher; the service keeps no state.
type Weather struct {
	client  *http.Client
	retrier *retry.Retrier
	baseURL string
}

func NewWeather() *Weather {
	return &Weather{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
		baseURL: "https://wttr.in",
	}
}

func (w *Weather) Current(ctx context.Context, params map[string]any) (any, error) {
	city, ok := params["city"].(string)
	if !ok || city == "" {
		return nil, fmt.Errorf("missing required parameter: city")
	}

	// format=3 returns a single "City: conditions temperature" line
	endpoint := fmt.Sprintf("%s/%s?format=3", w.baseURL, url.PathEscape(city))

	var report string
	err := w.retrier.Do(ctx, func() error {
		var err error
		report, err = w.fetch(ctx, endpoint)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("weather lookup failed: %w", err)
	}

	return strings.TrimSpace(report), nil
}

func (w *Weather) fetch(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", core.VelaUserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
