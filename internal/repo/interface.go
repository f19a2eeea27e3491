package repo

import (
	"context"

	"github.com/avoronin/todo-ai-api/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	ListCategories(ctx context.Context) ([]string, error)
	ToggleCompleted(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
