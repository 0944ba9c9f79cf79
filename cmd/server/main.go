package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/manntalati/smart-wardrobe/internal/config"
	"github.com/manntalati/smart-wardrobe/internal/core"
	"github.com/manntalati/smart-wardrobe/internal/core/classifier"
	"github.com/manntalati/smart-wardrobe/internal/core/gaps"
	"github.com/manntalati/smart-wardrobe/internal/core/index"
	"github.com/manntalati/smart-wardrobe/internal/core/knowledge"
	"github.com/manntalati/smart-wardrobe/internal/llm"
	"github.com/manntalati/smart-wardrobe/internal/server"
	"github.com/manntalati/smart-wardrobe/internal/store"
	"github.com/manntalati/smart-wardrobe/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()

	ctx := context.Background()

	st, err := store.Open(cfg.Paths.Database)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer st.Close()
	if err := st.Initialize(); err != nil {
		log.Fatalf("Failed to initialize catalog schema: %v", err)
	}

	tax, err := classifier.LoadTaxonomy(cfg.Paths.Taxonomy)
	if err != nil {
		log.Fatalf("Failed to load taxonomy: %v", err)
	}
	capsule, err := gaps.LoadCapsule(cfg.Paths.Capsule)
	if err != nil {
		log.Fatalf("Failed to load capsule coverage table: %v", err)
	}

	generative, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	if generative == nil {
		log.Println("No generative backend configured; outfit suggestions will be rule-based")
	}

	var cls *classifier.Classifier
	if embedder != nil {
		cls, err = classifier.New(ctx, embedder, tax)
		if err != nil {
			log.Fatalf("Failed to prime classifier: %v", err)
		}
	} else {
		log.Println("No embedding backend configured; uploads cannot be classified")
	}

	retriever := knowledge.Load(ctx, cfg.Paths.Knowledge, embedder)

	ix := index.New(cfg.Index.Dimension)
	w := core.New(cls, ix, retriever, generative, tax, capsule)

	// The index is in-memory; restoring it from the catalog's persisted
	// vectors is a required startup step, not an optimization.
	snapshot, err := st.Snapshot()
	if err != nil {
		log.Fatalf("Failed to snapshot catalog for index rebuild: %v", err)
	}
	if err := w.RebuildIndex(snapshot); err != nil {
		log.Fatalf("Failed to rebuild vector index: %v", err)
	}
	log.Printf("Rebuilt vector index with %d items", ix.Len())

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	wc := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL)

	srv := server.New(w, st, wc, cfg.Server.UploadDir)
	r := srv.SetupRouter()

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
