package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apperrors "graph-rag-recommender/backend/pkg/errors"
)

// LLM providers understood by the server.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all application configuration
type Config struct {
	// App
	Port     string
	Env      string
	LogLevel string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// LLM
	LLMProvider    string
	LiteLLMURL     string // OpenAI-compatible endpoint, e.g. a LiteLLM proxy
	ModelID        string
	OpenAIAPIKey   string
	GeminiAPIKey   string
	GeminiModel    string
	LLMTemperature float64

	// Recommender
	ResponseLanguage string
	// ExposeQueryErrors lets raw driver errors from generated queries flow
	// into the follow-up prompt. Off unless explicitly enabled.
	ExposeQueryErrors bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", ""),
		Neo4jURI:          getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:         getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:     getEnv("NEO4J_PASSWORD", "password"),
		Neo4jDatabase:     getEnv("NEO4J_DATABASE", ""),
		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		LiteLLMURL:        getEnv("LITELLM_URL", "http://localhost:4000"),
		ModelID:           getEnv("MODEL_ID", "gpt-4o-mini"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		LLMTemperature:    getEnvFloat("LLM_TEMPERATURE", 0.3),
		ResponseLanguage:  getEnv("RESPONSE_LANGUAGE", "English"),
		ExposeQueryErrors: getEnvBool("EXPOSE_QUERY_ERRORS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_URI")
	}
	if c.Neo4jUser == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_USER")
	}
	if c.Neo4jPassword == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
	}
	if c.ResponseLanguage == "" {
		return apperrors.NewConfigMissingRequired("RESPONSE_LANGUAGE")
	}

	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.LiteLLMURL == "" {
			return apperrors.NewConfigMissingRequired("LITELLM_URL")
		}
		if c.ModelID == "" {
			return apperrors.NewConfigMissingRequired("MODEL_ID")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return apperrors.NewConfigMissingRequired("GEMINI_API_KEY")
		}
		if c.GeminiModel == "" {
			return apperrors.NewConfigMissingRequired("GEMINI_MODEL")
		}
	default:
		return apperrors.NewConfigValidationFailed("LLM_PROVIDER",
			fmt.Sprintf("unknown provider %q, expected %q or %q", c.LLMProvider, ProviderOpenAI, ProviderGemini))
	}

	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return apperrors.NewConfigValidationFailed("LLM_TEMPERATURE", "must be between 0 and 2")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseFloat(value, 64); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultValue
}
