package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/avoronin/todo-ai-api/internal/model"
	"github.com/avoronin/todo-ai-api/internal/service"
)

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>My ToDo List</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }
.task-item { padding: .5rem 0; border-bottom: 1px solid #ddd; }
.task-item.completed .task-content { text-decoration: line-through; color: #888; }
.category-badge { font-size: .75rem; background: #eee; border-radius: 4px; padding: 2px 6px; margin-left: .5rem; }
</style>
</head>
<body>
<h1>My ToDo List</h1>
<form id="addTaskForm">
	<input type="text" id="taskInput" placeholder="New task...">
	<button type="submit">Add Task</button>
</form>
<ul id="taskList">
{{range .Tasks}}
	<li class="task-item{{if .Completed}} completed{{end}}" data-task-id="{{.ID}}">
		<input type="checkbox" class="task-checkbox"{{if .Completed}} checked{{end}}>
		<span class="task-content">{{.Content}}</span>
		<span class="category-badge">{{.Category}}</span>
		<button class="ask-ai-btn" data-task-text="{{.Content}}">Ask AI</button>
		<button class="delete-btn">Delete</button>
	</li>
{{else}}
	<li id="noTasksMessage">Nothing to do yet!</li>
{{end}}
</ul>
<button id="global-motivate-button">Motivate Me</button>
</body>
</html>`

// PageHandler отдает серверную страницу со списком задач
type PageHandler struct {
	service *service.TaskService
	logger  *zap.Logger
	tmpl    *template.Template
}

func NewPageHandler(srv *service.TaskService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		service: srv,
		logger:  logger,
		tmpl:    template.Must(template.New("index").Parse(indexHTML)),
	}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		// Страница не показывает ошибки хранилища - рендерим пустой список
		h.logger.Error("failed to list tasks for index page", zap.Error(err))
		tasks = []model.Task{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, map[string]interface{}{"Tasks": tasks}); err != nil {
		h.logger.Error("failed to render index page", zap.Error(err))
	}
}
