package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/velahq/vela/internal/core"
)

type TasksRepo struct {
	db *sql.DB
}

func NewTasksRepo(db *sql.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

func (r *TasksRepo) AddTask(ctx context.Context, description string, taskCtx json.RawMessage) (int64, error) {
	var ctxVal any
	if len(taskCtx) > 0 {
		ctxVal = string(taskCtx)
	}

	query := `INSERT INTO tasks (description, status, context) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, description, core.TaskPending, ctxVal)
	if err != nil {
		return 0, fmt.Errorf("failed to insert task: %w", err)
	}

	return res.LastInsertId()
}

func (r *TasksRepo) SetStatus(ctx context.Context, id int64, status string) error {
	// completed_at tracks the completed status only; moving a task back
	// to pending clears it.
	query := `UPDATE tasks
	          SET status = ?,
	              completed_at = CASE WHEN ? = ? THEN CURRENT_TIMESTAMP ELSE NULL END
	          WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, status, status, core.TaskCompleted, id)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (r *TasksRepo) PendingTasks(ctx context.Context) ([]core.Task, error) {
	query := `SELECT id, description, status, created_at, completed_at, context FROM tasks WHERE status = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, core.TaskPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending tasks: %w", err)
	}
	defer rows.Close()

	var tasks []core.Task
	for rows.Next() {
		var task core.Task
		var completedAt sql.NullTime
		var taskCtx sql.NullString

		if err := rows.Scan(&task.ID, &task.Description, &task.Status, &task.CreatedAt, &completedAt, &taskCtx); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if completedAt.Valid {
			task.CompletedAt = &completedAt.Time
		}
		if taskCtx.Valid && taskCtx.String != "" {
			task.Context = []byte(taskCtx.String)
		}

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}
