package recommender

import (
	"context"

	"go.uber.org/zap"

	"graph-rag-recommender/backend/internal/adapter"
)

// generateQuery asks the model whether the conversation needs graph data
// and, if so, for the Cypher statement that fetches it. The output is not
// validated here; a bad statement surfaces when it is executed.
func (s *Service) generateQuery(ctx context.Context, req ChatRequest, history string) (RouteDecision, error) {
	resp, err := s.llm.Complete(ctx, adapter.UserPrompt(buildCypherPrompt(req, history)))
	if err != nil {
		return RouteDecision{}, err
	}

	route := ParseRoute(resp.Content)
	s.logger.Debug("Query generator decided",
		zap.String("user_id", req.UserID),
		zap.Bool("needs_query", route.NeedsQuery),
		zap.String("query", route.Query),
	)
	return route, nil
}
