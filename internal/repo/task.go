package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoronin/todo-ai-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorStorage  = errors.New("storage error")
)

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (content, category)
		VALUES ($1, $2)
		RETURNING id, content, completed, category
	`, t.Content, t.Category).Scan(
		&t.ID, &t.Content, &t.Completed, &t.Category,
	)
	return t, r.mapError(err)
}

func (r *TaskRepo) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, content, completed, category
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, r.mapError(err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Content, &t.Completed, &t.Category); err != nil {
			return nil, r.mapError(err)
		}
		tasks = append(tasks, t)
	}
	return tasks, r.mapError(rows.Err())
}

func (r *TaskRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT category
		FROM tasks
		WHERE category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, r.mapError(err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, r.mapError(err)
		}
		categories = append(categories, c)
	}
	return categories, r.mapError(rows.Err())
}

// ToggleCompleted переключает флаг одним UPDATE, без read-modify-write на стороне приложения
func (r *TaskRepo) ToggleCompleted(ctx context.Context, id int64) (bool, error) {
	var completed bool
	err := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET completed = NOT completed
		WHERE id = $1
		RETURNING completed
	`, id).Scan(&completed)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrorNotFound
	}
	return completed, r.mapError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return r.mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s", ErrorStorage, pgErr.Code)
	}
	return fmt.Errorf("%w: %v", ErrorStorage, err)
}
