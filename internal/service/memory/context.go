package memory

import (
	"context"
	"strings"

	"github.com/velahq/vela/internal/core"
	"github.com/velahq/vela/pkg/log"
)

// ContextBuilder renders the bounded recent conversation window into a
// transcript for prompting. The window is process-global, not
// per-session: concurrent conversations may interleave in it.
type ContextBuilder struct {
	chat core.ChatRepository
}

func NewContextBuilder(chat core.ChatRepository) *ContextBuilder {
	return &ContextBuilder{chat: chat}
}

// Build returns the window most recent turns as "speaker: content"
// lines in chronological order. Retrieval failures degrade to an empty
// transcript instead of blocking the conversation.
func (b *ContextBuilder) Build(ctx context.Context, window int) string {
	turns, err := b.chat.RecentTurns(ctx, window)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to build conversation context")
		return ""
	}

	lines := make([]string, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		lines = append(lines, turns[i].Speaker+": "+turns[i].Content)
	}
	return strings.Join(lines, "\n")
}
