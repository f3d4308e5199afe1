package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velahq/vela/internal/core"
)

type SemanticRepo struct {
	db *sql.DB
}

func NewSemanticRepo(db *sql.DB) *SemanticRepo {
	return &SemanticRepo{db: db}
}

func (r *SemanticRepo) AddFact(ctx context.Context, concept, knowledge string, confidence float64) (int64, error) {
	// Facts are never overwritten; each call adds a new row and
	// retrieval ranks by confidence.
	query := `INSERT INTO semantic_memory (concept, knowledge, confidence) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, concept, knowledge, confidence)
	if err != nil {
		return 0, fmt.Errorf("failed to insert semantic fact: %w", err)
	}

	return res.LastInsertId()
}

func (r *SemanticRepo) BestFact(ctx context.Context, concept string) (core.SemanticFact, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.SemanticFact{}, err
	}
	defer tx.Rollback()

	// Confidence ties go to the newest row.
	query := `SELECT id, concept, knowledge, confidence, last_accessed
	          FROM semantic_memory
	          WHERE concept = ?
	          ORDER BY confidence DESC, id DESC
	          LIMIT 1`

	var fact core.SemanticFact
	err = tx.QueryRowContext(ctx, query, concept).
		Scan(&fact.ID, &fact.Concept, &fact.Knowledge, &fact.Confidence, &fact.LastAccessed)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SemanticFact{}, fmt.Errorf("concept %q: %w", concept, core.ErrNotFound)
	}
	if err != nil {
		return core.SemanticFact{}, fmt.Errorf("failed to query semantic fact: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE semantic_memory SET last_accessed = CURRENT_TIMESTAMP WHERE id = ?`, fact.ID,
	); err != nil {
		return core.SemanticFact{}, fmt.Errorf("failed to refresh last_accessed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.SemanticFact{}, err
	}
	return fact, nil
}
