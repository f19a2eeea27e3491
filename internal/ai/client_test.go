package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider поднимает httptest-сервер вместо настоящего Gemini API
func fakeProvider(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestClient_Generate(t *testing.T) {
	server := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "models/gemini-1.5-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "world"}}}},
			},
		})
	})

	client := NewClient("test-key", "gemini-1.5-flash").WithBaseURL(server.URL)

	text, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", text)
}

func TestClient_Generate_NoAPIKey(t *testing.T) {
	called := false
	server := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	client := NewClient("", "gemini-1.5-flash").WithBaseURL(server.URL)

	_, err := client.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoAPIKey)
	assert.False(t, called, "no outbound call should be attempted without a key")
}

func TestClient_Generate_ProviderError(t *testing.T) {
	server := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "quota exceeded"},
		})
	})

	client := NewClient("test-key", "gemini-1.5-flash").WithBaseURL(server.URL)

	_, err := client.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrorRelay)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestClient_Generate_MalformedResponse(t *testing.T) {
	server := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	client := NewClient("test-key", "gemini-1.5-flash").WithBaseURL(server.URL)

	_, err := client.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrorRelay)
}

func TestClient_Generate_EmptyCandidates(t *testing.T) {
	server := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	client := NewClient("test-key", "gemini-1.5-flash").WithBaseURL(server.URL)

	_, err := client.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrorRelay)
}

func TestClient_Generate_ConnectionError_DoesNotLeakKey(t *testing.T) {
	server := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // соединение будет отклонено

	client := NewClient("secret-key", "gemini-1.5-flash").WithBaseURL(server.URL)

	_, err := client.Generate(context.Background(), "hello")
	require.ErrorIs(t, err, ErrorRelay)
	assert.False(t, strings.Contains(err.Error(), "secret-key"), "error text must not contain the API key")
}
