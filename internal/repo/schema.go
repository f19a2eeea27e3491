package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id BIGSERIAL PRIMARY KEY,
	content VARCHAR(200) NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	category VARCHAR(100) NOT NULL DEFAULT 'default'
)`

// EnsureSchema создает таблицу при старте, если ее еще нет
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createTasksTable)
	return err
}

// ResetSchema удаляет и пересоздает таблицу. Вызывается только при старте
// процесса под флагом RESET_DB, никогда во время обработки запросов.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS tasks"); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, createTasksTable)
	return err
}
