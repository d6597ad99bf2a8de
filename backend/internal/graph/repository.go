package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "graph-rag-recommender/backend/pkg/errors"
	"graph-rag-recommender/backend/pkg/logger"
)

// Repository owns the Neo4j driver and hands out scoped sessions
type Repository struct {
	driver   neo4j.DriverWithContext
	uri      string
	database string
	logger   *zap.Logger
}

// Connect creates a driver for uri and verifies that the server is reachable.
// Any failure is reported as a StoreConnectionError.
func Connect(ctx context.Context, uri, user, password, database string) (*Repository, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewStoreConnectionError(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewStoreConnectionError(uri, err)
	}

	repo := NewRepository(driver, database)
	repo.uri = uri
	return repo, nil
}

// NewRepository wraps an existing driver. An empty database selects the
// server's default database.
func NewRepository(driver neo4j.DriverWithContext, database string) *Repository {
	return &Repository{
		driver:   driver,
		database: database,
		logger:   logger.Get().Named("graph"),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// OpenSession acquires a session for one top-level operation.
// The caller must Close it, typically with defer.
func (r *Repository) OpenSession(ctx context.Context) *Session {
	return &Session{
		session: r.driver.NewSession(ctx, neo4j.SessionConfig{
			AccessMode:   neo4j.AccessModeWrite,
			DatabaseName: r.database,
		}),
		uri:    r.uri,
		logger: r.logger,
	}
}

// Session runs every query of a single operation. It is not safe for
// concurrent use, matching the underlying driver session.
type Session struct {
	session neo4j.SessionWithContext
	uri     string
	logger  *zap.Logger
}

// Close releases the session back to the driver pool
func (s *Session) Close(ctx context.Context) error {
	return s.session.Close(ctx)
}

// run executes a fixed statement and collects its records, classifying
// failures into connection and query errors.
func (s *Session) run(ctx context.Context, operation, query string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := s.session.Run(ctx, query, params)
	if err != nil {
		return nil, s.classify(operation, err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, s.classify(operation, err)
	}
	return records, nil
}

func (s *Session) classify(operation string, err error) error {
	if neo4j.IsConnectivityError(err) {
		return apperrors.NewStoreConnectionError(s.uri, fmt.Errorf("%s: %w", operation, err))
	}
	return apperrors.NewStoreQueryError(operation, err)
}
