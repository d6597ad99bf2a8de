package graph

import (
	"context"

	"go.uber.org/zap"
)

// ============================================================================
// User Operations
// ============================================================================

// upsertUserQuery makes the stored styles and likes equal to the given sets.
// Deleting a null relationship is a no-op, so the OPTIONAL MATCHes are safe
// for users without prior edges.
const upsertUserQuery = `
	MERGE (u:User {id: $userID})
	WITH u
	OPTIONAL MATCH (u)-[hs:HAS_STYLE]->(s:Style)
	WHERE NOT s.name IN $styles
	DELETE hs
	WITH DISTINCT u
	OPTIONAL MATCH (u)-[l:LIKED]->(p:Place)
	WHERE NOT p.id IN $likedPlaceIDs
	DELETE l
	WITH DISTINCT u
	FOREACH (styleName IN $styles |
		MERGE (s:Style {name: styleName})
		MERGE (u)-[:HAS_STYLE]->(s))
	FOREACH (placeID IN $likedPlaceIDs |
		MERGE (p:Place {id: placeID})
		MERGE (u)-[:LIKED]->(p))
	RETURN u.id AS id
`

// UpsertUser creates the user if needed and replaces its styles and liked
// places. Running it twice with the same input leaves the graph unchanged.
func (s *Session) UpsertUser(ctx context.Context, userID string, likedPlaceIDs, styles []string) error {
	_, err := s.run(ctx, "upsert user", upsertUserQuery, map[string]any{
		"userID":        userID,
		"likedPlaceIDs": nonNil(likedPlaceIDs),
		"styles":        nonNil(styles),
	})
	if err != nil {
		return err
	}

	s.logger.Debug("User profile upserted",
		zap.String("user_id", userID),
		zap.Int("styles", len(styles)),
		zap.Int("liked_places", len(likedPlaceIDs)),
	)
	return nil
}
