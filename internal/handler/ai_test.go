package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avoronin/todo-ai-api/internal/ai"
)

type stubGenerator struct {
	text  string
	err   error
	noKey bool
}

func (s stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func (s stubGenerator) Configured() bool {
	return !s.noKey
}

func newAIHandler(gen ai.Generator) *AIHandler {
	return NewAIHandler(ai.NewRelay(gen), zap.NewNop())
}

func TestAIHandler_AskAI(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		gen      stubGenerator
		wantCode int
		check    func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:     "successful elaboration",
			body:     `{"task_text":"Buy milk"}`,
			gen:      stubGenerator{text: "Here is a plan..."},
			wantCode: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "Here is a plan...", resp["details"])
			},
		},
		{
			name:     "missing task text",
			body:     `{}`,
			gen:      stubGenerator{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "empty body",
			body:     "",
			gen:      stubGenerator{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "not json",
			body:     "task_text=hello",
			gen:      stubGenerator{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing credential",
			body:     `{"task_text":"Buy milk"}`,
			gen:      stubGenerator{noKey: true},
			wantCode: http.StatusInternalServerError,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Contains(t, resp["error"], "Missing API key")
			},
		},
		{
			name:     "missing credential wins over missing text",
			body:     `{}`,
			gen:      stubGenerator{noKey: true},
			wantCode: http.StatusInternalServerError,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Contains(t, resp["error"], "Missing API key")
			},
		},
		{
			name:     "provider failure",
			body:     `{"task_text":"Buy milk"}`,
			gen:      stubGenerator{err: ai.ErrorRelay},
			wantCode: http.StatusInternalServerError,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Contains(t, resp["error"], "An error occurred contacting AI")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newAIHandler(tt.gen)

			req := httptest.NewRequest(http.MethodPost, "/ask-ai", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			handler.AskAI(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestAIHandler_AskAI_NoOutboundCallWithoutKey(t *testing.T) {
	// Настоящий клиент без ключа: провайдер не должен быть вызван вообще
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := ai.NewClient("", "gemini-1.5-flash").WithBaseURL(server.URL)
	handler := NewAIHandler(ai.NewRelay(client), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/ask-ai", strings.NewReader(`{"task_text":"Buy milk"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.AskAI(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, called)
}

func TestAIHandler_Motivate(t *testing.T) {
	t.Run("successful motivation", func(t *testing.T) {
		handler := newAIHandler(stubGenerator{text: "Go get it!"})

		req := httptest.NewRequest(http.MethodPost, "/motivate-me", nil)
		w := httptest.NewRecorder()
		handler.Motivate(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Go get it!", resp["motivation"])
	})

	t.Run("missing credential", func(t *testing.T) {
		handler := newAIHandler(stubGenerator{noKey: true})

		req := httptest.NewRequest(http.MethodPost, "/motivate-me", nil)
		w := httptest.NewRecorder()
		handler.Motivate(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
