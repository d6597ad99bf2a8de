package recommender

import (
	"context"
	"errors"

	"graph-rag-recommender/backend/internal/adapter"
	"graph-rag-recommender/backend/internal/graph"
)

// Mock implementations for testing

type upsertCall struct {
	userID        string
	likedPlaceIDs []string
	styles        []string
}

type mockSession struct {
	graphContext *graph.GraphContext
	rows         []graph.Row
	queryErr     error
	upsertErr    error
	fetchErr     error

	calls   []string
	upserts []upsertCall
	queries []string
	closed  int
}

func (m *mockSession) UpsertUser(ctx context.Context, userID string, likedPlaceIDs, styles []string) error {
	m.calls = append(m.calls, "upsert")
	m.upserts = append(m.upserts, upsertCall{userID, likedPlaceIDs, styles})
	return m.upsertErr
}

func (m *mockSession) FetchContext(ctx context.Context, userID, placeID string) (*graph.GraphContext, error) {
	m.calls = append(m.calls, "fetch")
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if m.graphContext != nil {
		return m.graphContext, nil
	}
	return &graph.GraphContext{
		UserProfile:  graph.BuildUserProfile(nil, nil),
		Relationship: graph.ClassifyRelationship(false, nil),
	}, nil
}

func (m *mockSession) RunQuery(ctx context.Context, query string) ([]graph.Row, error) {
	m.calls = append(m.calls, "query")
	m.queries = append(m.queries, query)
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.rows, nil
}

func (m *mockSession) Close(ctx context.Context) error {
	m.closed++
	return nil
}

type mockSessions struct {
	session *mockSession
	opened  int
}

func (m *mockSessions) OpenSession(ctx context.Context) GraphSession {
	m.opened++
	return m.session
}

type mockLLM struct {
	responses    []string
	err          error
	prompts      []string
	generateFunc func(prompt string, call int) (string, error)
}

func (m *mockLLM) Provider() string { return "mock" }

func (m *mockLLM) Complete(ctx context.Context, messages []adapter.Message) (*adapter.Response, error) {
	prompt := messages[len(messages)-1].Content
	m.prompts = append(m.prompts, prompt)
	call := len(m.prompts)

	if m.generateFunc != nil {
		content, err := m.generateFunc(prompt, call)
		if err != nil {
			return nil, err
		}
		return &adapter.Response{Content: content}, nil
	}
	if m.err != nil {
		return nil, m.err
	}
	if call > len(m.responses) {
		return nil, errors.New("unexpected LLM call")
	}
	return &adapter.Response{Content: m.responses[call-1]}, nil
}

func newTestService(session *mockSession, llm *mockLLM, opts Options) (*Service, *mockSessions) {
	sessions := &mockSessions{session: session}
	return NewService(sessions, llm, opts), sessions
}
