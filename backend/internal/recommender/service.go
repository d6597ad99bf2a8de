// Package recommender orchestrates the graph store and the LLM to answer
// travel questions and to score how well a place fits a user.
package recommender

import (
	"context"

	"go.uber.org/zap"

	"graph-rag-recommender/backend/internal/adapter"
	"graph-rag-recommender/backend/internal/graph"
	"graph-rag-recommender/backend/internal/utils"
	"graph-rag-recommender/backend/pkg/logger"
)

// GraphSession is the subset of graph.Session the orchestration needs.
// One session serves one top-level operation.
type GraphSession interface {
	UpsertUser(ctx context.Context, userID string, likedPlaceIDs, styles []string) error
	FetchContext(ctx context.Context, userID, placeID string) (*graph.GraphContext, error)
	RunQuery(ctx context.Context, query string) ([]graph.Row, error)
	Close(ctx context.Context) error
}

// SessionFactory opens a graph session
type SessionFactory interface {
	OpenSession(ctx context.Context) GraphSession
}

// SessionFunc adapts a function to SessionFactory
type SessionFunc func(ctx context.Context) GraphSession

// OpenSession calls f
func (f SessionFunc) OpenSession(ctx context.Context) GraphSession {
	return f(ctx)
}

// RepositorySessions opens sessions on a Neo4j repository
func RepositorySessions(repo *graph.Repository) SessionFactory {
	return SessionFunc(func(ctx context.Context) GraphSession {
		return repo.OpenSession(ctx)
	})
}

// Options tune prompt and error policy
type Options struct {
	// Language the final replies are written in, as a name or a code
	Language string
	// ExposeQueryErrors includes the driver's error text in the graph data
	// section when a generated query fails
	ExposeQueryErrors bool
}

// Service exposes the free chat and fitness score operations
type Service struct {
	sessions SessionFactory
	llm      adapter.LLM
	opts     Options
	logger   *zap.Logger
}

// NewService wires the collaborators together
func NewService(sessions SessionFactory, llm adapter.LLM, opts Options) *Service {
	opts.Language = utils.LanguageName(opts.Language)
	return &Service{
		sessions: sessions,
		llm:      llm,
		opts:     opts,
		logger:   logger.Get().Named("recommender"),
	}
}

// closeSession releases a session at the end of an operation. A failed
// close is logged; the operation's own result is what the caller needs.
func (s *Service) closeSession(ctx context.Context, session GraphSession) {
	if err := session.Close(ctx); err != nil {
		s.logger.Warn("Failed to close graph session", zap.Error(err))
	}
}
