package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graph-rag-recommender/backend/internal/graph"
)

type recordingWriter struct {
	upserted []string
	links    [][2]string
	failOn   string
}

func (w *recordingWriter) UpsertPlace(ctx context.Context, p graph.Place) error {
	if p.ID == w.failOn {
		return errors.New("write failed")
	}
	w.upserted = append(w.upserted, p.ID)
	return nil
}

func (w *recordingWriter) LinkSimilar(ctx context.Context, placeID, otherID string) error {
	w.links = append(w.links, [2]string{placeID, otherID})
	return nil
}

func TestParsePlaces(t *testing.T) {
	places, err := parsePlaces([]byte(`[
		{"id": "p1", "name": "Haeundae", "category": ["Beach", "Nature"], "similar_to": ["p2"]},
		{"id": "p2", "name": "Gwangalli", "category": "Beach"}
	]`))
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Haeundae", places[0].Name)
	assert.Equal(t, []string{"Beach"}, places[1].Categories)
	assert.Equal(t, []string{"Beach", "Nature"}, places[0].Categories)
	assert.Equal(t, []string{"p2"}, places[0].SimilarTo)
	assert.Empty(t, places[1].SimilarTo)
}

func TestParsePlaces_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":    `[{"id": "p1"`,
		"missing id":   `[{"name": "Nowhere"}]`,
		"duplicate id": `[{"id": "p1"}, {"id": "p1"}]`,
		"bad category": `[{"id": "p1", "category": 3}]`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parsePlaces([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestSeed_PlacesBeforeLinks(t *testing.T) {
	w := &recordingWriter{}
	places := []graph.Place{
		{ID: "p1", SimilarTo: []string{"p3"}},
		{ID: "p2"},
		{ID: "p3", SimilarTo: []string{"p1", "p2"}},
	}

	require.NoError(t, seed(context.Background(), w, places))
	assert.Equal(t, []string{"p1", "p2", "p3"}, w.upserted)
	assert.Equal(t, [][2]string{{"p1", "p3"}, {"p3", "p1"}, {"p3", "p2"}}, w.links)
}

func TestSeed_StopsOnError(t *testing.T) {
	w := &recordingWriter{failOn: "p2"}
	err := seed(context.Background(), w, []graph.Place{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}})

	assert.ErrorContains(t, err, "upsert place p2")
	assert.Equal(t, []string{"p1"}, w.upserted)
	assert.Empty(t, w.links)
}
