// Loader bulk-imports scraped support articles into the vector store so the
// similarity index has something to match against. Input is a JSON array of
// {issue, problem, solution} documents.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pgvector/pgvector-go"

	"github.com/ixome/troubleshooter/internal/config"
	"github.com/ixome/troubleshooter/internal/logger"
	"github.com/ixome/troubleshooter/internal/vectorstore"
)

type document struct {
	Issue    string `json:"issue"`
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

func main() {
	file := flag.String("file", "solutions.json", "path to the solutions JSON file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	zlog := logger.New(cfg.LogFilePath, cfg.Environment == "production")
	defer zlog.Sync()
	sugar := zlog.Sugar()

	data, err := os.ReadFile(*file)
	if err != nil {
		sugar.Fatalf("❌ Failed to read %s: %v", *file, err)
	}

	var docs []document
	if err := json.Unmarshal(data, &docs); err != nil {
		sugar.Fatalf("❌ Failed to parse %s: %v", *file, err)
	}
	sugar.Infof("📄 Loaded %d documents from %s", len(docs), *file)

	store, err := vectorstore.Open(cfg.DatabaseURL, cfg.EmbedDim, zlog)
	if err != nil {
		sugar.Fatalf("❌ Failed to open vector store: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		sugar.Fatalf("❌ Failed to migrate vector store: %v", err)
	}

	embedder, err := vectorstore.NewEmbedderFromConfig(cfg)
	if err != nil {
		sugar.Fatalf("❌ Failed to initialize embedder: %v", err)
	}

	ctx := context.Background()
	loaded := 0
	for _, doc := range docs {
		vec, err := embedder.Embed(ctx, doc.Problem)
		if err != nil {
			sugar.Errorf("⚠️ Skipping %q, embedding failed: %v", doc.Problem, err)
			continue
		}

		// Deterministic ID from the problem text so reloading the same
		// file overwrites rather than duplicates.
		solution := &vectorstore.SupportSolution{
			ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(doc.Problem)),
			Issue:     doc.Issue,
			Problem:   doc.Problem,
			Solution:  doc.Solution,
			Embedding: pgvector.NewVector(vec),
		}

		if err := store.Upsert(ctx, solution); err != nil {
			sugar.Errorf("⚠️ Skipping %q, upsert failed: %v", doc.Problem, err)
			continue
		}
		loaded++
	}

	total, err := store.Count(ctx)
	if err != nil {
		sugar.Warnf("⚠️ Failed to count stored solutions: %v", err)
	}

	sugar.Infof("✅ Upserted %d/%d documents (%d total in store)", loaded, len(docs), total)
}
