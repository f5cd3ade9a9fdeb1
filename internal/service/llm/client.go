package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"go.uber.org/zap"
)

const (
	completionTimeout = 30 * time.Second
	bodySnippetLimit  = 500
)

// Client talks to any OpenAI-compatible chat-completions endpoint
// (OpenAI, DeepSeek, most self-hosted gateways) over plain HTTP with
// bearer-token auth.
type Client struct {
	apiBase    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a completion client for the given endpoint
func NewClient(apiBase, apiKey, model string) *Client {
	return &Client{
		apiBase: apiBase,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: completionTimeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// Complete sends the prompt (plus an optional system message) and
// returns the generated text. Any failure comes back as a
// *CompletionError; the method never panics and never returns a raw
// provider error string as its success value.
func (c *Client) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := applyOptions(opts)

	var messages []chatMessage
	if o.systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: o.systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	payload := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase, bytes.NewReader(body))
	if err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	respBody := new(bytes.Buffer)
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &CompletionError{
			StatusCode: resp.StatusCode,
			Body:       truncate(respBody.String(), bodySnippetLimit),
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(respBody.Bytes(), &raw); err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to parse response as JSON: %w", err)}
	}

	text, ok := ExtractText(raw)
	if !ok {
		// Unrecognized provider shape: hand back the raw JSON rather
		// than failing the call outright.
		logger.GetLogger().Warn("unrecognized completion response shape",
			zap.String("body", truncate(respBody.String(), 200)))
		return truncate(respBody.String(), bodySnippetLimit), nil
	}

	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
