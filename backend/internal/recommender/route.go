package recommender

import (
	"strings"
)

// NoQuerySentinel is what the model answers when no graph data is needed
const NoQuerySentinel = "NO_CYPHER"

// RouteDecision is the parsed answer of the query generator
type RouteDecision struct {
	NeedsQuery bool
	Query      string
}

// ParseRoute is the only place that interprets the generator's raw output.
// The sentinel must match exactly after trimming; anything else, including
// near matches, is treated as a query and left for the store to reject.
func ParseRoute(raw string) RouteDecision {
	trimmed := strings.TrimSpace(raw)
	if trimmed == NoQuerySentinel {
		return RouteDecision{}
	}
	return RouteDecision{NeedsQuery: true, Query: unwrapCodeFence(trimmed)}
}

// unwrapCodeFence strips a surrounding ``` block, with or without a
// language tag, which models often add around generated statements.
func unwrapCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		firstLine := strings.TrimSpace(body[:nl])
		if firstLine == "" || !strings.ContainsAny(firstLine, " ()[]{}:") {
			body = body[nl+1:]
		}
	}
	return strings.TrimSpace(body)
}
