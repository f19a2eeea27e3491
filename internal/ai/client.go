package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrNoAPIKey = errors.New("missing API key")
	ErrorRelay  = errors.New("relay error")
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client ходит в Gemini generateContent REST API
type Client struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		model:   model,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL переопределяет адрес провайдера (для тестов)
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// Configured сообщает, задан ли ключ провайдера
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate отправляет промпт и возвращает текст ответа как есть.
// Ключ проверяется до обращения к провайдеру.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrorRelay, err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrorRelay, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error содержит полный URL вместе с ключом, наружу идет только причина
		var ue *url.Error
		if errors.As(err, &ue) {
			return "", fmt.Errorf("%w: %v", ErrorRelay, ue.Err)
		}
		return "", fmt.Errorf("%w: %v", ErrorRelay, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrorRelay, err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrorRelay, err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("%w: provider returned %d: %s", ErrorRelay, resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("%w: provider returned %d", ErrorRelay, resp.StatusCode)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response from provider", ErrorRelay)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
