package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// Ad-hoc Query Operations
// ============================================================================

// RunQuery executes a generated statement and returns its rows with driver
// graph types converted to plain maps and lists. Errors are returned as-is
// (classified) and it is up to the caller whether to surface them.
func (s *Session) RunQuery(ctx context.Context, query string) ([]Row, error) {
	records, err := s.run(ctx, "run generated query", query, nil)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		values := make([]any, len(record.Values))
		for i, v := range record.Values {
			values[i] = PlainValue(v)
		}
		rows = append(rows, Row{Keys: record.Keys, Values: values})
	}

	s.logger.Debug("Generated query executed", zap.Int("rows", len(rows)))
	return rows, nil
}

// PlainValue converts nodes to their properties, relationships to their
// type and properties, and paths to the list of node property maps.
// Collections are converted recursively; everything else is returned unchanged.
func PlainValue(v any) any {
	switch val := v.(type) {
	case neo4j.Node:
		return plainMap(val.Props)
	case neo4j.Relationship:
		return map[string]any{
			"type":       val.Type,
			"properties": plainMap(val.Props),
		}
	case neo4j.Path:
		nodes := make([]any, 0, len(val.Nodes))
		for _, n := range val.Nodes {
			nodes = append(nodes, plainMap(n.Props))
		}
		return nodes
	case map[string]any:
		return plainMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = PlainValue(item)
		}
		return out
	default:
		return v
	}
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = PlainValue(v)
	}
	return out
}
