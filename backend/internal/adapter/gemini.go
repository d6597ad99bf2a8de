package adapter

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"graph-rag-recommender/backend/internal/metrics"
	apperrors "graph-rag-recommender/backend/pkg/errors"
	"graph-rag-recommender/backend/pkg/logger"
)

const providerGemini = "gemini"

// GeminiAdapter calls Google's Gemini API directly
type GeminiAdapter struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// GeminiOption customizes the underlying genai client
type GeminiOption func(*genai.ClientConfig)

// WithGeminiBaseURL points the client at a different API root
func WithGeminiBaseURL(url string) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

// NewGeminiAdapter creates a client for the Gemini developer API
func NewGeminiAdapter(ctx context.Context, apiKey, model string, temperature float64, opts ...GeminiOption) (*GeminiAdapter, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, apperrors.NewLLMInvocationError(providerGemini, model, err)
	}

	return &GeminiAdapter{
		client:      client,
		model:       model,
		temperature: float32(temperature),
		logger:      logger.Get().Named("llm"),
	}, nil
}

// Provider names the backend for logs and metrics
func (a *GeminiAdapter) Provider() string {
	return providerGemini
}

// Complete sends the user messages as contents and any system messages as
// the system instruction.
func (a *GeminiAdapter) Complete(ctx context.Context, messages []Message) (*Response, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(a.temperature),
	}

	var contents []*genai.Content
	var system []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	start := time.Now()
	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		metrics.RecordLLMCall(providerGemini, time.Since(start), err)
		a.logger.Error("LLM request failed",
			zap.Error(err),
			zap.String("model", a.model),
		)
		return nil, apperrors.NewLLMInvocationError(providerGemini, a.model, err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		err := apperrors.NewLLMInvocationError(providerGemini, a.model, apperrors.ErrEmptyCompletion)
		metrics.RecordLLMCall(providerGemini, time.Since(start), err)
		return nil, err
	}
	metrics.RecordLLMCall(providerGemini, time.Since(start), nil)

	a.logger.Debug("LLM response generated",
		zap.String("model", a.model),
		zap.Int("candidates", len(result.Candidates)),
	)

	return &Response{Content: text, Model: a.model}, nil
}
