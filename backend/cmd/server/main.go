package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"graph-rag-recommender/backend/internal/adapter"
	"graph-rag-recommender/backend/internal/graph"
	"graph-rag-recommender/backend/internal/recommender"
	"graph-rag-recommender/backend/pkg/config"
	"graph-rag-recommender/backend/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...",
		zap.String("env", cfg.Env),
		zap.String("llm_provider", cfg.LLMProvider),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to Neo4j
	repo, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer repo.Close(context.Background())

	llm, err := newLLM(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize LLM adapter", zap.Error(err))
	}

	svc := recommender.NewService(recommender.RepositorySessions(repo), llm, recommender.Options{
		Language:          cfg.ResponseLanguage,
		ExposeQueryErrors: cfg.ExposeQueryErrors,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(svc, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return
	}
	log.Info("Server exited")
}

// newLLM picks the adapter for the configured provider
func newLLM(ctx context.Context, cfg *config.Config) (adapter.LLM, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return adapter.NewGeminiAdapter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTemperature)
	case config.ProviderOpenAI:
		return adapter.NewOpenAIAdapter(cfg.LiteLLMURL, cfg.OpenAIAPIKey, cfg.ModelID, cfg.LLMTemperature), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}
}
