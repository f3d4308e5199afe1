package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/velahq/vela/internal/core"
)

type stubChatRepo struct {
	turns []core.ChatTurn
	err   error
}

func (s *stubChatRepo) AddTurn(ctx context.Context, turn core.ChatTurn) (int64, error) {
	return 0, nil
}

func (s *stubChatRepo) RecentTurns(ctx context.Context, limit int) ([]core.ChatTurn, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.turns) {
		return s.turns[:limit], nil
	}
	return s.turns, nil
}

func TestContextBuilder_Build(t *testing.T) {
	tests := []struct {
		name   string
		turns  []core.ChatTurn // newest first, as the repo returns them
		err    error
		window int
		want   string
	}{
		{
			name:   "empty_history",
			turns:  nil,
			window: 5,
			want:   "",
		},
		{
			name: "chronological_transcript",
			turns: []core.ChatTurn{
				{Speaker: core.SpeakerAssistant, Content: "Hello"},
				{Speaker: core.SpeakerUser, Content: "Hi"},
			},
			window: 5,
			want:   "user: Hi\nassistant: Hello",
		},
		{
			name: "window_bounds_result",
			turns: []core.ChatTurn{
				{Speaker: core.SpeakerAssistant, Content: "newest"},
				{Speaker: core.SpeakerUser, Content: "older"},
				{Speaker: core.SpeakerUser, Content: "oldest"},
			},
			window: 2,
			want:   "user: older\nassistant: newest",
		},
		{
			name:   "retrieval_failure_degrades_to_empty",
			err:    errors.New("database on fire"),
			window: 5,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewContextBuilder(&stubChatRepo{turns: tt.turns, err: tt.err})
			got := b.Build(context.Background(), tt.window)
			require.Equal(t, tt.want, got)
		})
	}
}
