package recommender

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"graph-rag-recommender/backend/internal/adapter"
	"graph-rag-recommender/backend/internal/metrics"
)

// FreeChat answers the latest turn of a conversation. The user's profile is
// upserted first, then the model decides whether to query the graph, and the
// reply is composed either from the user context alone or grounded in the
// query result. Store and model failures are returned to the caller; only a
// failing generated query is folded into the prompt.
func (s *Service) FreeChat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	session := s.sessions.OpenSession(ctx)
	defer s.closeSession(ctx, session)

	if err := session.UpsertUser(ctx, req.UserID, req.LikedPlaceIDs, req.Styles); err != nil {
		return nil, err
	}

	history := RenderHistory(req.Messages)

	route, err := s.generateQuery(ctx, req, history)
	if err != nil {
		return nil, err
	}

	gc, err := session.FetchContext(ctx, req.UserID, req.PlaceID)
	if err != nil {
		return nil, err
	}
	metrics.RecordRoute(route.NeedsQuery)

	var prompt string
	if route.NeedsQuery {
		graphData := s.executeAndFormat(ctx, session, route.Query)
		prompt = buildGroundedReplyPrompt(gc, graphData, history, s.opts.Language)
	} else {
		prompt = buildDirectReplyPrompt(gc, history, s.opts.Language)
	}

	resp, err := s.llm.Complete(ctx, adapter.UserPrompt(prompt))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Chat reply generated",
		zap.String("user_id", req.UserID),
		zap.String("place_id", req.PlaceID),
		zap.Bool("used_graph_query", route.NeedsQuery),
		zap.String("relationship", gc.Relationship.Tier.String()),
	)

	return &ChatReply{Reply: strings.TrimSpace(resp.Content)}, nil
}
