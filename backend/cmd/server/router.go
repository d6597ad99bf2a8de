package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"graph-rag-recommender/backend/internal/metrics"
	"graph-rag-recommender/backend/internal/recommender"
	apperrors "graph-rag-recommender/backend/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

// recommendationService is what the HTTP handlers call into
type recommendationService interface {
	FreeChat(ctx context.Context, req recommender.ChatRequest) (*recommender.ChatReply, error)
	FitnessScore(ctx context.Context, req recommender.FitnessRequest) (*recommender.FitnessScore, error)
}

func newRouter(svc recommendationService, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Free-form travel chat
		api.POST("/chat", func(c *gin.Context) {
			var req recommender.ChatRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			reply, err := svc.FreeChat(c.Request.Context(), req)
			if err != nil {
				writeError(c, log, "Failed to generate chat reply", err)
				return
			}
			c.JSON(http.StatusOK, reply)
		})

		// Place fitness score
		api.POST("/fitness", func(c *gin.Context) {
			var req recommender.FitnessRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			score, err := svc.FitnessScore(c.Request.Context(), req)
			if err != nil {
				writeError(c, log, "Failed to compute fitness score", err)
				return
			}
			c.JSON(http.StatusOK, score)
		})
	}

	return router
}

// writeError maps service errors to a status code. Validation problems are
// reported back verbatim; everything else gets a generic message and is logged.
func writeError(c *gin.Context, log *zap.Logger, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusBadRequest {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	log.Error(msg,
		zap.String("request_id", c.GetString(requestIDHeader)),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.JSON(status, gin.H{"error": msg})
}

func statusFor(err error) int {
	var (
		validationErr *apperrors.ValidationError
		connErr       *apperrors.StoreConnectionError
		llmErr        *apperrors.LLMInvocationError
		parseErr      *apperrors.OutputParseError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &connErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &llmErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// requestID tags every request with an id, reusing the caller's if present
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), status, latency)

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.String("request_id", c.GetString(requestIDHeader)),
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
