package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/internal/repository/implementation"
	"faq-chatbot-be/pkg/database"
	"faq-chatbot-be/pkg/embedding"
	"faq-chatbot-be/pkg/faqtext"
	"faq-chatbot-be/pkg/rag/search"

	"github.com/fatih/color"
)

// seed_kb loads a FAQ export into the similarity index. The export is a JSON
// object mapping raw questions to raw answers; questions may carry leading
// [tag] markers and answers carry portal boilerplate, both handled by the
// preprocessing pass.
//
// Usage: go run ./cmd/seed_kb -file faq.json
func main() {
	filePath := flag.String("file", "faq.json", "path to the FAQ JSON export")
	flag.Parse()

	color.Cyan("Seeding knowledge base from %s", *filePath)

	cfg := config.Load()

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		color.Red("Failed to read %s: %v", *filePath, err)
		os.Exit(1)
	}

	var corpus map[string]string
	if err := json.Unmarshal(raw, &corpus); err != nil {
		color.Red("Failed to parse FAQ export: %v", err)
		os.Exit(1)
	}
	color.Green("Loaded %d raw FAQ pairs", len(corpus))

	entries := make([]search.KnowledgeEntry, 0, len(corpus))
	for question, answer := range corpus {
		tags, cleanQuestion := faqtext.ExtractTags(question)
		entries = append(entries, search.KnowledgeEntry{
			Question: cleanQuestion,
			Answer:   faqtext.Clean(answer),
			Tags:     tags,
		})
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Unable to connect to GORM DB: %v", err)
		os.Exit(1)
	}
	gormDB.Exec("CREATE EXTENSION IF NOT EXISTS vector")
	if err := gormDB.AutoMigrate(&model.KnowledgeEmbedding{}); err != nil {
		color.Red("Unable to migrate schema: %v", err)
		os.Exit(1)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbeddingModel)
	}

	indexRepo := implementation.NewKnowledgeEmbeddingRepository(gormDB, embeddingProvider)
	engine := search.NewEngine(indexRepo, log.New(os.Stdout, "[SEED] ", log.LstdFlags))

	color.Yellow("Indexing %d entries into %d collections, this embeds each entry %d times...",
		len(entries), len(search.Collections), len(search.Collections))

	if err := engine.BulkAdd(context.Background(), entries); err != nil {
		color.Red("Bulk add failed: %v", err)
		os.Exit(1)
	}

	color.Green("Done. %d entries indexed.", len(entries))
}
