package core

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AIProvider is the external language-model capability: role-tagged
// turns in, generated text out. No retry or streaming is assumed here;
// callers needing deadlines wrap the call at the boundary.
type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}
