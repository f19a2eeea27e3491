package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyTask = errors.New("empty task text")

const elaborateTemplate = "Please provide more details, break down into sub-steps, or give tips for completing the following task:\n\nTask: \"%s\""

const motivatePrompt = "Generate a short, punchy, and slightly quirky motivational message " +
	"for someone using a to-do list app. Make it encouraging but maybe a little funny or unexpected. " +
	"Keep it under 50 words."

// Generator абстрагирует провайдера генерации текста
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// Relay собирает промпт из пользовательского ввода и пересылает провайдеру.
// Никакого кэширования и ретраев - один синхронный вызов на запрос.
type Relay struct {
	gen Generator
}

func NewRelay(gen Generator) *Relay {
	return &Relay{gen: gen}
}

// Elaborate проверяет ключ раньше текста задачи: без ключа клиент
// получает ошибку конфигурации, а не валидации
func (r *Relay) Elaborate(ctx context.Context, taskText string) (string, error) {
	if !r.gen.Configured() {
		return "", ErrNoAPIKey
	}

	taskText = strings.TrimSpace(taskText)
	if taskText == "" {
		return "", ErrEmptyTask
	}
	return r.gen.Generate(ctx, fmt.Sprintf(elaborateTemplate, taskText))
}

func (r *Relay) Motivate(ctx context.Context) (string, error) {
	if !r.gen.Configured() {
		return "", ErrNoAPIKey
	}
	return r.gen.Generate(ctx, motivatePrompt)
}
