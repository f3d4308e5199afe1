package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/velahq/vela/internal/core"
	"github.com/velahq/vela/pkg/log"
)

type ChatRepo struct {
	db *sql.DB
}

func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) AddTurn(ctx context.Context, turn core.ChatTurn) (int64, error) {
	var turnCtx any
	if len(turn.Context) > 0 {
		turnCtx = string(turn.Context)
	}

	query := `INSERT INTO chat_history (speaker, content, context) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, turn.Speaker, turn.Content, turnCtx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert chat turn: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ChatRepo) RecentTurns(ctx context.Context, limit int) ([]core.ChatTurn, error) {
	// Order by id, not created_at: CURRENT_TIMESTAMP has second
	// resolution, so id is the only strict insertion order.
	query := `SELECT id, speaker, content, context, created_at FROM chat_history ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var turns []core.ChatTurn
	for rows.Next() {
		var turn core.ChatTurn
		var turnCtx sql.NullString

		if err := rows.Scan(&turn.ID, &turn.Speaker, &turn.Content, &turnCtx, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat turn: %w", err)
		}
		if turnCtx.Valid && turnCtx.String != "" {
			turn.Context = []byte(turnCtx.String)
		}

		turns = append(turns, turn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Msg("loaded recent chat turns")
	return turns, nil
}
