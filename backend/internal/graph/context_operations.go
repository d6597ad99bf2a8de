package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// Context Operations
// ============================================================================

const (
	SummaryDirect        = "The user has directly liked this place before."
	SummaryNone          = "The user has no direct or similar connections to this place."
	summarySimilarFormat = "The user has liked similar places such as: %s."

	profileEmpty = "The user has not shared any preferred styles or liked places yet."
)

// Categories are returned raw and normalized in Go, so a category stored as
// a single string and one stored as a list aggregate the same way.
const userProfileQuery = `
	OPTIONAL MATCH (u:User {id: $userID})
	OPTIONAL MATCH (u)-[:HAS_STYLE]->(s:Style)
	WITH u, collect(DISTINCT s.name) AS styles
	OPTIONAL MATCH (u)-[:LIKED]->(p:Place)
	RETURN styles, collect(p.category) AS raw_categories
`

const relationshipQuery = `
	OPTIONAL MATCH (u:User {id: $userID})
	OPTIONAL MATCH (u)-[r:LIKED]->(:Place {id: $placeID})
	WITH u, count(r) > 0 AS directly_liked
	OPTIONAL MATCH (u)-[:LIKED]->(similar:Place)-[:SIMILAR_TO]-(:Place {id: $placeID})
	WHERE similar.id <> $placeID
	RETURN directly_liked, collect(DISTINCT similar.name) AS similar_places
`

const placeQuery = `
	MATCH (p:Place {id: $placeID})
	RETURN p.name AS name, p.category AS category, p.description AS description
`

// FetchContext reads the user's profile, their connection to placeID and the
// place itself. An empty placeID skips the place lookups. Read-only.
func (s *Session) FetchContext(ctx context.Context, userID, placeID string) (*GraphContext, error) {
	records, err := s.run(ctx, "fetch user profile", userProfileQuery, map[string]any{
		"userID": userID,
	})
	if err != nil {
		return nil, err
	}

	gc := &GraphContext{
		Styles:          []string{},
		LikedCategories: []string{},
	}
	if len(records) > 0 {
		gc.Styles = getStringSliceFromRecord(records[0], "styles")
		gc.LikedCategories = NormalizeCategories(getListFromRecord(records[0], "raw_categories"))
	}
	gc.UserProfile = BuildUserProfile(gc.Styles, gc.LikedCategories)

	if placeID == "" {
		gc.Relationship = ClassifyRelationship(false, nil)
		return gc, nil
	}

	records, err = s.run(ctx, "fetch relationship", relationshipQuery, map[string]any{
		"userID":  userID,
		"placeID": placeID,
	})
	if err != nil {
		return nil, err
	}
	var direct bool
	var similar []string
	if len(records) > 0 {
		direct = getBoolFromRecord(records[0], "directly_liked")
		similar = getStringSliceFromRecord(records[0], "similar_places")
	}
	gc.Relationship = ClassifyRelationship(direct, similar)

	records, err = s.run(ctx, "fetch place", placeQuery, map[string]any{
		"placeID": placeID,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		s.logger.Warn("Place not found in graph", zap.String("place_id", placeID))
		return gc, nil
	}
	gc.PlaceDescription = DescribePlace(placeFromRecord(records[0], placeID))
	gc.HasPlace = true

	return gc, nil
}

func placeFromRecord(record *neo4j.Record, placeID string) Place {
	category, _ := record.Get("category")
	return Place{
		ID:          placeID,
		Name:        getStringFromRecord(record, "name"),
		Categories:  NormalizeCategories([]any{category}),
		Description: getStringFromRecord(record, "description"),
	}
}

// NormalizeCategories flattens raw category values, each a string or a list
// of strings, into a de-duplicated list in first-seen order. Empty and
// non-string values are dropped. The result is stable under re-normalization.
func NormalizeCategories(raw []any) []string {
	seen := make(map[string]struct{})
	out := []string{}

	add := func(v any) {
		str, ok := v.(string)
		str = strings.TrimSpace(str)
		if !ok || str == "" {
			return
		}
		if _, dup := seen[str]; dup {
			return
		}
		seen[str] = struct{}{}
		out = append(out, str)
	}

	for _, value := range raw {
		switch v := value.(type) {
		case []any:
			for _, item := range v {
				add(item)
			}
		case []string:
			for _, item := range v {
				add(item)
			}
		default:
			add(v)
		}
	}
	return out
}

// BuildUserProfile renders styles and liked categories as one sentence.
// Missing halves are left out rather than rendered as empty lists.
func BuildUserProfile(styles, likedCategories []string) string {
	stylePart := ""
	if len(styles) > 0 {
		stylePart = "prefers styles such as " + strings.Join(styles, ", ")
	}
	categoryPart := ""
	if len(likedCategories) > 0 {
		categoryPart = "has liked places in the following categories: " + strings.Join(likedCategories, ", ")
	}

	switch {
	case stylePart != "" && categoryPart != "":
		return "The user " + stylePart + " and " + categoryPart + "."
	case stylePart != "":
		return "The user " + stylePart + "."
	case categoryPart != "":
		return "The user " + categoryPart + "."
	default:
		return profileEmpty
	}
}

// ClassifyRelationship picks exactly one tier. A direct like wins over a
// similar one.
func ClassifyRelationship(directlyLiked bool, similarPlaces []string) Relationship {
	switch {
	case directlyLiked:
		return Relationship{Tier: TierDirect, Summary: SummaryDirect}
	case len(similarPlaces) > 0:
		return Relationship{
			Tier:          TierSimilar,
			Summary:       fmt.Sprintf(summarySimilarFormat, strings.Join(similarPlaces, ", ")),
			SimilarPlaces: similarPlaces,
		}
	default:
		return Relationship{Tier: TierNone, Summary: SummaryNone}
	}
}

// DescribePlace formats a place as "Name (cat1, cat2): description"
func DescribePlace(p Place) string {
	name := p.Name
	if name == "" {
		name = p.ID
	}

	var b strings.Builder
	b.WriteString(name)
	if len(p.Categories) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(p.Categories, ", "))
		b.WriteString(")")
	}
	if p.Description != "" {
		b.WriteString(": ")
		b.WriteString(p.Description)
	}
	return b.String()
}
