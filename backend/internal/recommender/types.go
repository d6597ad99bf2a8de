package recommender

import (
	"strings"

	apperrors "graph-rag-recommender/backend/pkg/errors"
)

// Chat roles accepted from callers
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry of the caller-supplied conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the input of FreeChat
type ChatRequest struct {
	UserID        string        `json:"user_id"`
	LikedPlaceIDs []string      `json:"liked_place_ids"`
	Styles        []string      `json:"styles"`
	PlaceID       string        `json:"place_id,omitempty"`
	Messages      []ChatMessage `json:"messages"`
}

// ChatReply is the output of FreeChat
type ChatReply struct {
	Reply string `json:"reply"`
}

// FitnessRequest is the input of FitnessScore
type FitnessRequest struct {
	UserID        string   `json:"user_id"`
	LikedPlaceIDs []string `json:"liked_place_ids"`
	Styles        []string `json:"styles"`
	PlaceID       string   `json:"place_id"`
}

// FitnessScore is how well a place matches a user, on a 0-100 scale
type FitnessScore struct {
	Score       int    `json:"score" validate:"gte=0,lte=100"`
	Explanation string `json:"explanation" validate:"required"`
}

// Validate checks the request before any store or model call
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return apperrors.NewValidationError("user_id", "is required")
	}
	for _, m := range r.Messages {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return apperrors.NewValidationError("messages.role", "must be \"user\" or \"assistant\"")
		}
	}
	return nil
}

// Validate checks the request before any store or model call
func (r FitnessRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return apperrors.NewValidationError("user_id", "is required")
	}
	if strings.TrimSpace(r.PlaceID) == "" {
		return apperrors.NewValidationError("place_id", "is required to score a place")
	}
	return nil
}
