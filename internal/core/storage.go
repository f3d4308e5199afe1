package core

import (
	"context"
	"encoding/json"
)

type ChatRepository interface {
	AddTurn(ctx context.Context, turn ChatTurn) (int64, error)
	// RecentTurns returns the limit most recently inserted turns,
	// newest first.
	RecentTurns(ctx context.Context, limit int) ([]ChatTurn, error)
}

type TaskRepository interface {
	AddTask(ctx context.Context, description string, taskCtx json.RawMessage) (int64, error)
	SetStatus(ctx context.Context, id int64, status string) error
	PendingTasks(ctx context.Context) ([]Task, error)
}

type PreferenceRepository interface {
	Set(ctx context.Context, key string, value json.RawMessage) error
	// Get returns ErrNotFound when the key has never been set.
	Get(ctx context.Context, key string) (Preference, error)
}

type SemanticRepository interface {
	AddFact(ctx context.Context, concept, knowledge string, confidence float64) (int64, error)
	// BestFact returns the highest-confidence fact for concept and
	// refreshes its last_accessed stamp, or ErrNotFound.
	BestFact(ctx context.Context, concept string) (SemanticFact, error)
}

type BackupManager interface {
	// Snapshot copies the store into the backup directory and prunes
	// old snapshots. Returns the snapshot path.
	Snapshot(ctx context.Context) (string, error)
}
