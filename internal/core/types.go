package core

import (
	"encoding/json"
	"time"
)

const (
	VelaName      = "Vela"
	VelaUserAgent = "Vela-Assistant/0.1"
	VelaVersion   = "0.1.0"
)

const (
	SpeakerUser      = "user"
	SpeakerAssistant = "assistant"
)

const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
)

// ChatTurn is one persisted message attributed to the user or the
// assistant. Turns are append-only; insertion order is the conversation
// order.
type ChatTurn struct {
	ID        int64           `json:"id"`
	Speaker   string          `json:"speaker"`
	Content   string          `json:"content"`
	Context   json.RawMessage `json:"context,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Task has a two-state lifecycle: pending, then completed. CompletedAt
// is stamped only while the task is completed.
type Task struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Context     json.RawMessage `json:"context,omitempty"`
}

// Preference is a single key/value user setting with upsert semantics.
type Preference struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SemanticFact is a confidence-weighted piece of knowledge about a
// concept. Multiple facts may share a concept; retrieval picks the
// highest confidence.
type SemanticFact struct {
	ID           int64     `json:"id"`
	Concept      string    `json:"concept"`
	Knowledge    string    `json:"knowledge"`
	Confidence   float64   `json:"confidence"`
	LastAccessed time.Time `json:"last_accessed"`
}

// ToolResult is the dispatcher's uniform success/failure shape. It is
// transient and never persisted.
type ToolResult struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
	Apology string `json:"apology,omitempty"`
}
