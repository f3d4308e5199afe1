package tools

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_Execute(t *testing.T) {
	tests := []struct {
		name        string
		register    map[string]Handler
		call        string
		wantSuccess bool
		wantResult  any
		errContains []string
		apoContains []string
	}{
		{
			name:        "unknown_tool",
			register:    nil,
			call:        "nonexistent",
			wantSuccess: false,
			errContains: []string{"Unknown tool", "nonexistent"},
		},
		{
			name: "success_passes_result_through",
			register: map[string]Handler{
				"echo": func(ctx context.Context, params map[string]any) (any, error) {
					return params["text"], nil
				},
			},
			call:        "echo",
			wantSuccess: true,
			wantResult:  "hello",
		},
		{
			name: "handler_error_becomes_apology",
			register: map[string]Handler{
				"x": func(ctx context.Context, params map[string]any) (any, error) {
					return nil, errors.New("boom")
				},
			},
			call:        "x",
			wantSuccess: false,
			errContains: []string{"boom"},
			apoContains: []string{"x", "boom"},
		},
		{
			name: "handler_panic_is_contained",
			register: map[string]Handler{
				"explode": func(ctx context.Context, params map[string]any) (any, error) {
					panic("kaboom")
				},
			},
			call:        "explode",
			wantSuccess: false,
			errContains: []string{"kaboom"},
			apoContains: []string{"explode", "kaboom"},
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(rand.New(rand.NewSource(1)))
			for name, h := range tt.register {
				d.Register(name, h)
			}

			res := d.Execute(ctx, tt.call, map[string]any{"text": "hello"})

			require.Equal(t, tt.wantSuccess, res.Success)
			if tt.wantSuccess {
				require.Equal(t, tt.wantResult, res.Result)
				require.Empty(t, res.Error)
				return
			}
			for _, s := range tt.errContains {
				require.Contains(t, res.Error, s)
			}
			for _, s := range tt.apoContains {
				require.Contains(t, res.Apology, s)
			}
		})
	}
}

func TestDispatcher_ApologyAlwaysNamesToolAndError(t *testing.T) {
	// Every template must carry the tool name; the error text is
	// appended verbatim.
	d := NewDispatcher(rand.New(rand.NewSource(7)))
	d.Register("weather", func(ctx context.Context, params map[string]any) (any, error) {
		return nil, errors.New("city unknown")
	})

	for i := 0; i < 20; i++ {
		res := d.Execute(context.Background(), "weather", nil)
		require.False(t, res.Success)
		require.Contains(t, res.Apology, "weather")
		require.Contains(t, res.Apology, "Technical details: city unknown")
	}
}

func TestDispatcher_RegisterReplaces(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register("tool", func(ctx context.Context, params map[string]any) (any, error) {
		return "old", nil
	})
	d.Register("tool", func(ctx context.Context, params map[string]any) (any, error) {
		return "new", nil
	})

	res := d.Execute(context.Background(), "tool", nil)
	require.True(t, res.Success)
	require.Equal(t, "new", res.Result)
	require.Equal(t, []string{"tool"}, d.Names())
}

func TestDispatcher_NamesSorted(t *testing.T) {
	d := NewDispatcher(nil)
	for _, name := range []string{"weather", "fetch_url", "news_headlines"} {
		d.Register(name, func(ctx context.Context, params map[string]any) (any, error) {
			return nil, nil
		})
	}

	require.Equal(t, []string{"fetch_url", "news_headlines", "weather"}, d.Names())
}

func TestDispatcher_ConcurrentExecute(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register("ok", func(ctx context.Context, params map[string]any) (any, error) {
		return "done", nil
	})
	d.Register("bad", func(ctx context.Context, params map[string]any) (any, error) {
		return nil, errors.New("nope")
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "ok"
			if i%2 == 1 {
				name = "bad"
			}
			res := d.Execute(context.Background(), name, nil)
			if name == "ok" && !res.Success {
				t.Error("expected success")
			}
			if name == "bad" && res.Success {
				t.Error("expected failure")
			}
		}(i)
	}
	wg.Wait()
}
