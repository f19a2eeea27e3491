package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/avoronin/todo-ai-api/internal/model"
	"github.com/avoronin/todo-ai-api/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, content, category string) (model.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Task{}, ErrValidation
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = model.DefaultCategory
	}

	return s.repo.Create(ctx, model.Task{Content: content, Category: category})
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

// Categories всегда содержит "default", даже если ни одна задача ее не использует
func (s *TaskService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(categories, model.DefaultCategory) {
		categories = append([]string{model.DefaultCategory}, categories...)
	}
	return categories, nil
}

func (s *TaskService) ToggleCompleted(ctx context.Context, id int64) (bool, error) {
	return s.repo.ToggleCompleted(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
