package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/velahq/vela/internal/core"
	"github.com/velahq/vela/pkg/log"
)

// Memory is the persistence facade over the four entity repositories
// and the backup manager. Every operation acquires its own connection
// via database/sql; nothing holds a transaction across calls.
type Memory struct {
	chat    core.ChatRepository
	tasks   core.TaskRepository
	prefs   core.PreferenceRepository
	facts   core.SemanticRepository
	backups core.BackupManager
}

func NewMemory(
	ctx context.Context,
	chat core.ChatRepository,
	tasks core.TaskRepository,
	prefs core.PreferenceRepository,
	facts core.SemanticRepository,
	backups core.BackupManager,
) *Memory {
	m := &Memory{
		chat:    chat,
		tasks:   tasks,
		prefs:   prefs,
		facts:   facts,
		backups: backups,
	}

	// First snapshot right after the store comes up.
	m.TriggerBackup(ctx)

	return m
}

func (m *Memory) StoreChat(ctx context.Context, speaker, content string, turnCtx map[string]any) error {
	if speaker == "" {
		return errors.New("chat turn rejected: speaker is required")
	}
	if content == "" {
		return errors.New("chat turn rejected: content is required")
	}

	blob, err := marshalContext(turnCtx)
	if err != nil {
		return err
	}

	if _, err := m.chat.AddTurn(ctx, core.ChatTurn{Speaker: speaker, Content: content, Context: blob}); err != nil {
		return err
	}

	log.FromCtx(ctx).Info().Str("speaker", speaker).Msg("stored chat turn")
	return nil
}

// RecentChat returns the limit most recent turns, newest first. Callers
// building a transcript reverse the slice to chronological order.
func (m *Memory) RecentChat(ctx context.Context, limit int) ([]core.ChatTurn, error) {
	return m.chat.RecentTurns(ctx, limit)
}

func (m *Memory) StoreTask(ctx context.Context, description string, taskCtx map[string]any) (int64, error) {
	if description == "" {
		return 0, errors.New("task rejected: description is required")
	}

	blob, err := marshalContext(taskCtx)
	if err != nil {
		return 0, err
	}

	id, err := m.tasks.AddTask(ctx, description, blob)
	if err != nil {
		return 0, err
	}

	log.FromCtx(ctx).Info().Int64("task", id).Msg("stored new task")
	return id, nil
}

func (m *Memory) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	if err := m.tasks.SetStatus(ctx, id, status); err != nil {
		return err
	}

	log.FromCtx(ctx).Info().Int64("task", id).Str("status", status).Msg("updated task status")
	return nil
}

func (m *Memory) PendingTasks(ctx context.Context) ([]core.Task, error) {
	return m.tasks.PendingTasks(ctx)
}

func (m *Memory) SetPreference(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("preference %q not serializable: %w", key, err)
	}

	if err := m.prefs.Set(ctx, key, data); err != nil {
		return err
	}

	log.FromCtx(ctx).Info().Str("key", key).Msg("updated preference")
	return nil
}

// GetPreference returns the stored value, or def when the key was never
// set. Storage failures propagate.
func (m *Memory) GetPreference(ctx context.Context, key string, def any) (any, error) {
	pref, err := m.prefs.Get(ctx, key)
	if errors.Is(err, core.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(pref.Value, &value); err != nil {
		return nil, fmt.Errorf("preference %q corrupt: %w", key, err)
	}
	return value, nil
}

func (m *Memory) StoreSemantic(ctx context.Context, concept, knowledge string, confidence float64) error {
	if concept == "" || knowledge == "" {
		return errors.New("semantic fact rejected: concept and knowledge are required")
	}

	if _, err := m.facts.AddFact(ctx, concept, knowledge, confidence); err != nil {
		return err
	}

	log.FromCtx(ctx).Info().Str("concept", concept).Msg("stored semantic fact")
	return nil
}

// GetSemantic returns the highest-confidence fact for concept, or
// core.ErrNotFound. Retrieval refreshes the fact's last_accessed stamp.
func (m *Memory) GetSemantic(ctx context.Context, concept string) (core.SemanticFact, error) {
	return m.facts.BestFact(ctx, concept)
}

// TriggerBackup takes a best-effort snapshot. Failures are logged and
// swallowed; a broken backup must never abort the caller's operation.
func (m *Memory) TriggerBackup(ctx context.Context) {
	if m.backups == nil {
		return
	}
	if _, err := m.backups.Snapshot(ctx); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("backup failed")
	}
}

func marshalContext(c map[string]any) (json.RawMessage, error) {
	if c == nil {
		return nil, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("context not serializable: %w", err)
	}
	return data, nil
}
