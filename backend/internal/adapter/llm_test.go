package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "graph-rag-recommender/backend/pkg/errors"
)

func newChatCompletionServer(t *testing.T, status int, body string, seen *[]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			var payload map[string]any
			_ = json.Unmarshal(raw, &payload)
			*seen = append(*seen, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}

func TestOpenAIAdapter_Complete(t *testing.T) {
	var requests []map[string]any
	srv := newChatCompletionServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "test-model",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "NO_CYPHER"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 2, "total_tokens": 12}
	}`, &requests)
	defer srv.Close()

	llm := NewOpenAIAdapter(srv.URL, "", "test-model", 0.2)
	resp, err := llm.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "NO_CYPHER", resp.Content)
	assert.Equal(t, "openai", llm.Provider())

	require.Len(t, requests, 1)
	assert.Equal(t, "test-model", requests[0]["model"])
	msgs, ok := requests[0]["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "hello", msgs[1].(map[string]any)["content"])
}

func TestOpenAIAdapter_ServerError(t *testing.T) {
	srv := newChatCompletionServer(t, http.StatusInternalServerError,
		`{"error": {"message": "upstream exploded", "type": "server_error"}}`, nil)
	defer srv.Close()

	llm := NewOpenAIAdapter(srv.URL, "key", "test-model", 0)
	_, err := llm.Complete(context.Background(), UserPrompt("hi"))
	require.Error(t, err)

	var invocationErr *apperrors.LLMInvocationError
	require.ErrorAs(t, err, &invocationErr)
	assert.Equal(t, "openai", invocationErr.Provider)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeLLM))
}

func TestOpenAIAdapter_EmptyChoices(t *testing.T) {
	srv := newChatCompletionServer(t, http.StatusOK, `{"id": "x", "model": "m", "choices": []}`, nil)
	defer srv.Close()

	llm := NewOpenAIAdapter(srv.URL, "key", "m", 0)
	_, err := llm.Complete(context.Background(), UserPrompt("hi"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCompletion)
}

func TestGeminiAdapter_Complete(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Welcome back!"}]}, "finishReason": "STOP"}]
		}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	llm, err := NewGeminiAdapter(ctx, "test-key", "gemini-test", 0.3, WithGeminiBaseURL(srv.URL))
	require.NoError(t, err)

	resp, err := llm.Complete(ctx, UserPrompt("hello"))
	require.NoError(t, err)
	assert.Equal(t, "Welcome back!", resp.Content)
	assert.Equal(t, "gemini", llm.Provider())

	require.Len(t, paths, 1)
	assert.True(t, strings.Contains(paths[0], "gemini-test"), paths[0])
}

func TestGeminiAdapter_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error": {"code": 503, "message": "overloaded", "status": "UNAVAILABLE"}}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	llm, err := NewGeminiAdapter(ctx, "test-key", "gemini-test", 0, WithGeminiBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = llm.Complete(ctx, UserPrompt("hello"))
	var invocationErr *apperrors.LLMInvocationError
	require.ErrorAs(t, err, &invocationErr)
	assert.Equal(t, "gemini-test", invocationErr.Model)
}
