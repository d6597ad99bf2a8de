package adapter

import (
	"context"
)

// Role of a message sent to the model
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one turn of the prompt sent to the model
type Message struct {
	Role    Role
	Content string
}

// Response represents the LLM's response
type Response struct {
	Content string
	Model   string
}

// LLM is a stateless single-turn model client. Implementations wrap every
// failure, including an empty completion, in an LLMInvocationError.
type LLM interface {
	Complete(ctx context.Context, messages []Message) (*Response, error)
	Provider() string
}

// UserPrompt is a convenience for the common single user message call
func UserPrompt(prompt string) []Message {
	return []Message{{Role: RoleUser, Content: prompt}}
}
