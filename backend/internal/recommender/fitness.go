package recommender

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"graph-rag-recommender/backend/internal/adapter"
	"graph-rag-recommender/backend/internal/metrics"
	apperrors "graph-rag-recommender/backend/pkg/errors"
)

const fitnessSchemaName = "fitness score"

const fitnessJSONSchema = `{"properties": {"score": {"description": "How well the place matches the user's preferences", "type": "integer", "minimum": 0, "maximum": 100}, "explanation": {"description": "Why the place received this score", "type": "string"}}, "required": ["score", "explanation"]}`

var validate = validator.New()

// FitnessFormatInstructions describes the JSON the scorer expects back
func FitnessFormatInstructions() string {
	return `The output should be formatted as a JSON instance that conforms to the JSON schema below.

As an example, for the schema {"properties": {"foo": {"title": "Foo", "description": "a list of strings", "type": "array", "items": {"type": "string"}}}, "required": ["foo"]}
the object {"foo": ["bar", "baz"]} is a well-formatted instance of the schema. The object {"properties": {"foo": ["bar", "baz"]}} is not well-formatted.

Here is the output schema:
` + "```\n" + fitnessJSONSchema + "\n```"
}

// FitnessScore rates how well a place suits the user. It never returns a
// score that did not come from a valid model response.
func (s *Service) FitnessScore(ctx context.Context, req FitnessRequest) (*FitnessScore, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	session := s.sessions.OpenSession(ctx)
	defer s.closeSession(ctx, session)

	if err := session.UpsertUser(ctx, req.UserID, req.LikedPlaceIDs, req.Styles); err != nil {
		return nil, err
	}

	gc, err := session.FetchContext(ctx, req.UserID, req.PlaceID)
	if err != nil {
		return nil, err
	}
	if !gc.HasPlace {
		return nil, apperrors.NewValidationError("place_id", fmt.Sprintf("place %q does not exist", req.PlaceID))
	}

	resp, err := s.llm.Complete(ctx, adapter.UserPrompt(buildFitnessPrompt(gc)))
	if err != nil {
		return nil, err
	}

	score, err := ParseFitnessScore(resp.Content)
	if err != nil {
		metrics.FitnessParseFailures.Inc()
		s.logger.Warn("Fitness score response rejected",
			zap.String("user_id", req.UserID),
			zap.String("place_id", req.PlaceID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Fitness score computed",
		zap.String("user_id", req.UserID),
		zap.String("place_id", req.PlaceID),
		zap.Int("score", score.Score),
	)
	return score, nil
}

type fitnessPayload struct {
	Score       *float64 `json:"score"`
	Explanation *string  `json:"explanation"`
}

// ParseFitnessScore extracts and validates the score object from raw model
// output. Markdown fences and surrounding prose are tolerated; a missing
// field, a non-integer or out-of-range score, or an empty explanation is an
// OutputParseError.
func ParseFitnessScore(raw string) (*FitnessScore, error) {
	fail := func(reason string, err error) error {
		return apperrors.NewOutputParseError(fitnessSchemaName, raw, reason, err)
	}

	jsonStr := extractJSONObject(raw)
	if jsonStr == "" {
		return nil, fail("no JSON object found", nil)
	}

	var payload fitnessPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fail("malformed JSON", err)
	}
	if payload.Score == nil {
		return nil, fail("missing field \"score\"", nil)
	}
	if payload.Explanation == nil {
		return nil, fail("missing field \"explanation\"", nil)
	}
	if *payload.Score != math.Trunc(*payload.Score) {
		return nil, fail(fmt.Sprintf("score %v is not an integer", *payload.Score), nil)
	}
	if *payload.Score < math.MinInt32 || *payload.Score > math.MaxInt32 {
		return nil, fail(fmt.Sprintf("score %v is out of range", *payload.Score), nil)
	}

	score := &FitnessScore{
		Score:       int(*payload.Score),
		Explanation: strings.TrimSpace(*payload.Explanation),
	}
	if err := validate.Struct(score); err != nil {
		return nil, fail(describeValidation(err), err)
	}
	return score, nil
}

// extractJSONObject strips code fences and returns the outermost {...} span
func extractJSONObject(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		var kept []string
		for _, line := range strings.Split(s, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				continue
			}
			kept = append(kept, line)
		}
		s = strings.Join(kept, "\n")
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Score":
		return fmt.Sprintf("score %v must be between 0 and 100", fe.Value())
	case "Explanation":
		return "explanation must not be empty"
	default:
		return fe.Error()
	}
}
