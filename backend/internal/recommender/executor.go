package recommender

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"graph-rag-recommender/backend/internal/graph"
	"graph-rag-recommender/backend/internal/metrics"
)

const (
	noDataMessage      = "No data was returned from the graph."
	queryFailurePrefix = "Failed to run query: "
	redactedQueryError = "graph query could not be executed"
)

// executeAndFormat runs a generated statement and always returns prompt
// text. Failures become a "Failed to run query" line so that the reply can
// still be composed; the driver's message is included only when the
// ExposeQueryErrors policy is on.
func (s *Service) executeAndFormat(ctx context.Context, session GraphSession, query string) string {
	rows, err := session.RunQuery(ctx, query)
	if err != nil {
		metrics.GeneratedQueryFailures.Inc()
		s.logger.Warn("Generated query failed",
			zap.String("query", query),
			zap.Error(err),
		)
		if s.opts.ExposeQueryErrors {
			return queryFailurePrefix + err.Error()
		}
		return queryFailurePrefix + redactedQueryError
	}
	return FormatRecords(rows)
}

// FormatRecords renders rows as numbered "[Record N]" blocks of "key: value"
// lines separated by blank lines. Map values are written as indented JSON.
func FormatRecords(rows []graph.Row) string {
	if len(rows) == 0 {
		return noDataMessage
	}

	blocks := make([]string, 0, len(rows))
	for i, row := range rows {
		lines := []string{fmt.Sprintf("[Record %d]", i+1)}
		for j, key := range row.Keys {
			var value any
			if j < len(row.Values) {
				value = row.Values[j]
			}
			lines = append(lines, key+": "+formatValue(value))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case map[string]any:
		out, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(out)
	case []any:
		out, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(out)
	default:
		return fmt.Sprintf("%v", val)
	}
}
