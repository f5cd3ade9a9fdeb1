package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSendsOpenAIPayload(t *testing.T) {
	var got chatRequest
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"a completion"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model")
	text, err := client.Complete(context.Background(), "say hi",
		WithSystemPrompt("you are terse"),
		WithTemperature(0.2),
		WithMaxTokens(64),
	)

	require.NoError(t, err)
	assert.Equal(t, "a completion", text)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 0.2, got.Temperature)
	assert.Equal(t, 64, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "you are terse", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "say hi", got.Messages[1].Content)
}

func TestCompleteDefaults(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", "m").Complete(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestCompleteNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", "m").Complete(context.Background(), "prompt")

	var ce *CompletionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusTooManyRequests, ce.StatusCode)
	assert.Contains(t, ce.Body, "rate limited")
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	_, err := NewClient(srv.URL, "k", "m").Complete(context.Background(), "prompt")

	var ce *CompletionError
	require.ErrorAs(t, err, &ce)
	assert.NotNil(t, ce.Err)
}

func TestCompleteMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", "m").Complete(context.Background(), "prompt")

	var ce *CompletionError
	require.ErrorAs(t, err, &ce)
	require.NotNil(t, ce.Err)
	assert.True(t, errors.Is(err, ce.Err) || strings.Contains(err.Error(), "JSON"))
}

func TestCompleteUnknownShapeFallsBackToRawJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weird":{"nested":"shape"}}`))
	}))
	defer srv.Close()

	text, err := NewClient(srv.URL, "k", "m").Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Contains(t, text, `"weird"`)
}
