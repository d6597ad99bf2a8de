package recommender

import (
	"fmt"
	"strings"

	"graph-rag-recommender/backend/internal/graph"
)

// graphSchemaDescription tells the query generator what it can match on
const graphSchemaDescription = `# Graph Schema Overview:
- (User)-[:HAS_STYLE]->(Style)
- (User)-[:LIKED]->(Place)
- (Place)-[:SIMILAR_TO]-(Place)
- (Place) has properties: id, name, category, description
- (Style) has properties: name
- (User) has properties: id
- Place.category is either a string or a list of strings`

// RenderHistory turns the conversation into "User:" / "Assistant:" lines
func RenderHistory(messages []ChatMessage) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		speaker := "Assistant"
		if m.Role == RoleUser {
			speaker = "User"
		}
		lines = append(lines, speaker+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

func buildCypherPrompt(req ChatRequest, history string) string {
	placeLine := ""
	if req.PlaceID != "" {
		placeLine = fmt.Sprintf("\n- The user is asking about place ID: %s", req.PlaceID)
	}

	return fmt.Sprintf(`You are a Cypher query generator for a Neo4j travel assistant system.

Use the following graph structure:
%s

User info:
- ID: %s
- Styles: %s
- Liked Places: %s%s

Chat history:
%s

If the user's message relates to recommending or evaluating places,
generate a single read-only Cypher query to fetch relevant user/place/style data.
Return only the query, without explanation.

If the question is not related to the graph, return exactly "%s".`,
		graphSchemaDescription,
		req.UserID,
		formatList(req.Styles),
		formatList(req.LikedPlaceIDs),
		placeLine,
		historyOrPlaceholder(history),
		NoQuerySentinel,
	)
}

// buildDirectReplyPrompt is used when the generator decided no graph query is needed
func buildDirectReplyPrompt(gc *graph.GraphContext, history, language string) string {
	return fmt.Sprintf(`You are a friendly travel assistant.

Use the following graph data to generate a personalized response to the user's question.

## User Information:
%s
%s
## Relationship between user and place:
%s

## Chat History:
%s

Please respond in %s, naturally and helpfully.
If there is no chat history, just return a short greeting message.`,
		gc.UserProfile,
		placeSection(gc),
		gc.Relationship.Summary,
		historyOrPlaceholder(history),
		language,
	)
}

// buildGroundedReplyPrompt is used after a generated query has been executed
func buildGroundedReplyPrompt(gc *graph.GraphContext, graphData, history, language string) string {
	return fmt.Sprintf(`You are a travel assistant.

Use the following user information and graph query result to answer the user's question.
Respond naturally and helpfully in %s.
If the user does not have any liked categories, generate a response using only their preferred travel styles.

## User Information:
%s
%s
## Relationship between user and place:
%s

## Graph data:
%s

## Conversation so far:
%s

If there is no chat history, just return a greeting message.`,
		language,
		gc.UserProfile,
		placeSection(gc),
		gc.Relationship.Summary,
		graphData,
		historyOrPlaceholder(history),
	)
}

func buildFitnessPrompt(gc *graph.GraphContext) string {
	return fmt.Sprintf(`You are a travel recommendation assistant.

A user has the following profile:
%s

Here is a place:
%s

And here is the relationship between the user and the place:
%s

Please evaluate how well this place matches the user's preferences.

Return your response in JSON format with the following fields:
- score: integer (0~100)
- explanation: string

%s`,
		gc.UserProfile,
		gc.PlaceDescription,
		gc.Relationship.Summary,
		FitnessFormatInstructions(),
	)
}

// placeSection is omitted entirely when there is no place to describe
func placeSection(gc *graph.GraphContext) string {
	if !gc.HasPlace || gc.PlaceDescription == "" {
		return ""
	}
	return fmt.Sprintf("\n## Place Information:\n%s\n", gc.PlaceDescription)
}

func historyOrPlaceholder(history string) string {
	if strings.TrimSpace(history) == "" {
		return "(no messages yet)"
	}
	return history
}

func formatList(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
