package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velahq/vela/pkg/retry"
)

func fastRetrier() *retry.Retrier {
	return retry.NewRetrier(&retry.Config{
		MaxRetries:    2,
		BackoffFactor: 1.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
		Jitter:        time.Millisecond,
	})
}

func TestWeather_Current(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Lisbon: ☀️ +24°C")
	}))
	defer srv.Close()

	w := NewWeather()
	w.baseURL = srv.URL
	w.retrier = fastRetrier()

	got, err := w.Current(context.Background(), map[string]any{"city": "Lisbon"})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon: ☀️ +24°C", got)
}

func TestWeather_MissingCity(t *testing.T) {
	w := NewWeather()

	_, err := w.Current(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "city")
}

func TestWeather_RetriesTransientFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprintln(w, "Porto: 🌧 +17°C")
	}))
	defer srv.Close()

	w := NewWeather()
	w.baseURL = srv.URL
	w.retrier = fastRetrier()

	got, err := w.Current(context.Background(), map[string]any{"city": "Porto"})
	require.NoError(t, err)
	assert.Equal(t, "Porto: 🌧 +17°C", got)
	assert.Equal(t, 3, calls)
}

func TestSearch_MissingQuery(t *testing.T) {
	s := NewSearch()

	_, err := s.Query(context.Background(), map[string]any{"query": ""})
	require.Error(t, err)
}

func TestNews_Headlines(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[1,2,3]`)
	})
	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"title":"story %s"}`, r.URL.Path[len("/item/"):len(r.URL.Path)-len(".json")])
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	n := NewNews()
	n.baseURL = srv.URL
	n.retrier = fastRetrier()

	got, err := n.Headlines(context.Background(), map[string]any{"count": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"story 1", "story 2"}, got)
}
