package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ============================================================================
// Place and Schema Operations (used by the seed command)
// ============================================================================

var constraintQueries = []string{
	"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
	"CREATE CONSTRAINT place_id_unique IF NOT EXISTS FOR (p:Place) REQUIRE p.id IS UNIQUE",
	"CREATE CONSTRAINT style_name_unique IF NOT EXISTS FOR (s:Style) REQUIRE s.name IS UNIQUE",
}

// EnsureConstraints creates the uniqueness constraints the MERGE statements rely on
func (s *Session) EnsureConstraints(ctx context.Context) error {
	for _, q := range constraintQueries {
		if _, err := s.run(ctx, "create constraint", q, nil); err != nil {
			return err
		}
	}
	return nil
}

// ResetGraph removes every User, Style and Place node
func (s *Session) ResetGraph(ctx context.Context) error {
	_, err := s.run(ctx, "reset graph", `
		MATCH (n)
		WHERE n:User OR n:Style OR n:Place
		DETACH DELETE n
	`, nil)
	return err
}

// UpsertPlace creates or updates a place. A single category is stored as a
// plain string, several as a list.
func (s *Session) UpsertPlace(ctx context.Context, p Place) error {
	if p.ID == "" {
		return fmt.Errorf("place id is required")
	}

	var category any = nonNil(p.Categories)
	if len(p.Categories) == 1 {
		category = p.Categories[0]
	}

	_, err := s.run(ctx, "upsert place", `
		MERGE (p:Place {id: $id})
		SET p.name = $name,
		    p.category = $category,
		    p.description = $description
		RETURN p.id AS id
	`, map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"category":    category,
		"description": p.Description,
	})
	return err
}

// LinkSimilar records that two places are similar. The relationship is
// stored once and matched in both directions.
func (s *Session) LinkSimilar(ctx context.Context, placeID, otherID string) error {
	if placeID == otherID {
		return nil
	}
	_, err := s.run(ctx, "link similar places", `
		MATCH (a:Place {id: $a}), (b:Place {id: $b})
		MERGE (a)-[:SIMILAR_TO]-(b)
	`, map[string]any{"a": placeID, "b": otherID})
	if err != nil {
		return err
	}

	s.logger.Debug("Places linked", zap.String("place", placeID), zap.String("similar_to", otherID))
	return nil
}
