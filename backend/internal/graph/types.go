package graph

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Place is a travel destination node
type Place struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Categories  []string `json:"category"`
	Description string   `json:"description,omitempty"`
	SimilarTo   []string `json:"similar_to,omitempty"`
}

// UnmarshalJSON accepts "category" as either a single string or a list,
// the same two shapes the graph stores.
func (p *Place) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Category    json.RawMessage `json:"category"`
		Description string          `json:"description"`
		SimilarTo   []string        `json:"similar_to"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = Place{ID: aux.ID, Name: aux.Name, Description: aux.Description, SimilarTo: aux.SimilarTo}
	if len(aux.Category) == 0 || string(aux.Category) == "null" {
		return nil
	}

	var single string
	if err := json.Unmarshal(aux.Category, &single); err == nil {
		if single != "" {
			p.Categories = []string{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(aux.Category, &many); err != nil {
		return fmt.Errorf("place %s: category must be a string or a list of strings", p.ID)
	}
	p.Categories = many
	return nil
}

// RelationshipTier says how a user is connected to a place
type RelationshipTier int

const (
	TierNone RelationshipTier = iota
	TierSimilar
	TierDirect
)

func (t RelationshipTier) String() string {
	switch t {
	case TierDirect:
		return "directly_liked"
	case TierSimilar:
		return "similar_liked"
	default:
		return "none"
	}
}

// Relationship is the summarized user-place connection
type Relationship struct {
	Tier          RelationshipTier `json:"tier"`
	Summary       string           `json:"summary"`
	SimilarPlaces []string         `json:"similar_places,omitempty"`
}

// GraphContext is everything the prompts need to know about a user and,
// optionally, the place they are asking about. Fields are named so that
// callers never depend on a positional order.
type GraphContext struct {
	UserProfile      string       `json:"user_profile"`
	Styles           []string     `json:"styles"`
	LikedCategories  []string     `json:"liked_categories"`
	Relationship     Relationship `json:"relationship"`
	PlaceDescription string       `json:"place_description,omitempty"`
	HasPlace         bool         `json:"has_place"`
}

// Row is one result record of an ad-hoc query with its column order kept
type Row struct {
	Keys   []string
	Values []any
}
