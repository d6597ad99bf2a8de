package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"graph-rag-recommender/backend/internal/metrics"
	apperrors "graph-rag-recommender/backend/pkg/errors"
	"graph-rag-recommender/backend/pkg/logger"
)

const providerOpenAI = "openai"

// OpenAIAdapter talks to any OpenAI-compatible chat completions endpoint,
// typically a LiteLLM proxy.
type OpenAIAdapter struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// NewOpenAIAdapter creates a new adapter. baseURL is the server root without
// the /v1 suffix.
func NewOpenAIAdapter(baseURL, apiKey, modelID string, temperature float64) *OpenAIAdapter {
	// LiteLLM accepts any key when it holds the provider credentials itself
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = strings.TrimSuffix(baseURL, "/") + "/v1"

	return &OpenAIAdapter{
		client:      openai.NewClientWithConfig(config),
		model:       modelID,
		temperature: float32(temperature),
		logger:      logger.Get().Named("llm"),
	}
}

// Provider names the backend for logs and metrics
func (a *OpenAIAdapter) Provider() string {
	return providerOpenAI
}

// Complete sends the messages and returns the first choice's content
func (a *OpenAIAdapter) Complete(ctx context.Context, messages []Message) (*Response, error) {
	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: a.temperature,
	}
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		metrics.RecordLLMCall(providerOpenAI, time.Since(start), err)
		a.logger.Error("LLM request failed",
			zap.Error(err),
			zap.String("model", a.model),
		)
		return nil, apperrors.NewLLMInvocationError(providerOpenAI, a.model, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		err := apperrors.NewLLMInvocationError(providerOpenAI, a.model, apperrors.ErrEmptyCompletion)
		metrics.RecordLLMCall(providerOpenAI, time.Since(start), err)
		return nil, err
	}
	metrics.RecordLLMCall(providerOpenAI, time.Since(start), nil)

	a.logger.Debug("LLM response generated",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
	}, nil
}
