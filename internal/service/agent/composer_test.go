package agent

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// queueSource feeds predetermined values into math/rand so each
// composer branch can be forced.
type queueSource struct {
	values []int64
	pos    int
}

func (q *queueSource) Int63() int64 {
	v := q.values[q.pos%len(q.values)]
	q.pos++
	return v
}

func (q *queueSource) Seed(seed int64) {}

func TestComposer_Branches(t *testing.T) {
	const base = "The answer is 42."

	tests := []struct {
		name   string
		values []int64
		check  func(t *testing.T, got string)
	}{
		{
			name:   "no_decoration",
			values: []int64{1 << 62}, // Float64() = 0.5
			check: func(t *testing.T, got string) {
				require.Equal(t, base, got)
			},
		},
		{
			name:   "prefix",
			values: []int64{0, 0, 0}, // decorate, branch 0, first phrase
			check: func(t *testing.T, got string) {
				require.Equal(t, wittyPrefixes[0]+" "+base, got)
			},
		},
		{
			name:   "postscript",
			values: []int64{0, 1 << 32, 0}, // decorate, branch 1, first phrase
			check: func(t *testing.T, got string) {
				require.Equal(t, base+" "+wittyPostscripts[0], got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer(rand.New(&queueSource{values: tt.values}))
			tt.check(t, c.Compose(base))
		})
	}
}

func TestComposer_DecorationRate(t *testing.T) {
	const base = "plain reply"
	c := NewComposer(rand.New(rand.NewSource(42)))

	decorated := 0
	for i := 0; i < 1000; i++ {
		got := c.Compose(base)
		if got == base {
			continue
		}
		decorated++

		// Every decoration comes from one of the fixed pools.
		known := false
		for _, p := range wittyPrefixes {
			if got == p+" "+base {
				known = true
			}
		}
		for _, p := range wittyPostscripts {
			if got == base+" "+p {
				known = true
			}
		}
		require.True(t, known, "unexpected decoration: %q", got)
		require.True(t, strings.Contains(got, base))
	}

	// 10% chance, generous bounds for a fixed seed.
	require.Greater(t, decorated, 30)
	require.Less(t, decorated, 300)
}
