package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"graph-rag-recommender/backend/internal/graph"
	"graph-rag-recommender/backend/pkg/config"
	"graph-rag-recommender/backend/pkg/logger"
)

func main() {
	placesFile := flag.String("places", "data/places.json", "JSON file with the places to load")
	reset := flag.Bool("reset", false, "Delete all users, styles and places before seeding")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...", zap.String("places", *placesFile))

	places, err := loadPlaces(*placesFile)
	if err != nil {
		log.Fatal("Failed to read places", zap.Error(err))
	}

	ctx := context.Background()
	repo, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer repo.Close(context.Background())

	session := repo.OpenSession(ctx)
	defer session.Close(ctx)

	if *reset {
		log.Warn("Resetting graph...")
		if err := session.ResetGraph(ctx); err != nil {
			log.Fatal("Failed to reset graph", zap.Error(err))
		}
	}

	// Create constraints
	log.Info("Creating constraints...")
	if err := session.EnsureConstraints(ctx); err != nil {
		log.Fatal("Failed to create constraints", zap.Error(err))
	}

	if err := seed(ctx, session, places); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	log.Info("Seeding completed", zap.Int("places", len(places)))
}

// placeWriter is the part of graph.Session the seeder uses
type placeWriter interface {
	UpsertPlace(ctx context.Context, p graph.Place) error
	LinkSimilar(ctx context.Context, placeID, otherID string) error
}

// seed writes every place first so that SIMILAR_TO links can reference
// places that appear later in the file.
func seed(ctx context.Context, w placeWriter, places []graph.Place) error {
	for _, p := range places {
		if err := w.UpsertPlace(ctx, p); err != nil {
			return fmt.Errorf("upsert place %s: %w", p.ID, err)
		}
	}
	for _, p := range places {
		for _, other := range p.SimilarTo {
			if err := w.LinkSimilar(ctx, p.ID, other); err != nil {
				return fmt.Errorf("link %s to %s: %w", p.ID, other, err)
			}
		}
	}
	return nil
}

func loadPlaces(path string) ([]graph.Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parsePlaces(data)
}

func parsePlaces(data []byte) ([]graph.Place, error) {
	var places []graph.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, fmt.Errorf("invalid places file: %w", err)
	}

	seen := make(map[string]bool, len(places))
	for i, p := range places {
		if p.ID == "" {
			return nil, fmt.Errorf("place at index %d has no id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate place id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return places, nil
}
