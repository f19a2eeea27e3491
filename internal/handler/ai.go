package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/avoronin/todo-ai-api/internal/ai"
	"github.com/avoronin/todo-ai-api/pkg/respond"
)

type AIHandler struct {
	relay  *ai.Relay
	logger *zap.Logger
}

func NewAIHandler(relay *ai.Relay, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		relay:  relay,
		logger: logger,
	}
}

type askAIRequest struct {
	TaskText string `json:"task_text"`
}

func (h *AIHandler) AskAI(w http.ResponseWriter, r *http.Request) {
	var req askAIRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "Request must be JSON")
			return
		}
	}

	details, err := h.relay.Elaborate(r.Context(), req.TaskText)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]string{"details": details})
}

func (h *AIHandler) Motivate(w http.ResponseWriter, r *http.Request) {
	motivation, err := h.relay.Motivate(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]string{"motivation": motivation})
}

func (h *AIHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ai.ErrEmptyTask):
		respond.Error(w, r, http.StatusBadRequest, "Missing task text in request.")
	case errors.Is(err, ai.ErrNoAPIKey):
		h.logger.Error("GOOGLE_API_KEY not configured")
		respond.Error(w, r, http.StatusInternalServerError, "Server configuration error: Missing API key.")
	case errors.Is(err, ai.ErrorRelay):
		h.logger.Error("provider call failed", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, fmt.Sprintf("An error occurred contacting AI: %v", err))
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
