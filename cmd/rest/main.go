package main

import (
	"context"
	"log"

	"faq-chatbot-be/internal/bootstrap"
	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/internal/server"
	"faq-chatbot-be/internal/tracer"
	"faq-chatbot-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	gormDB.Exec("CREATE EXTENSION IF NOT EXISTS vector")
	if err := gormDB.AutoMigrate(&model.KnowledgeEmbedding{}); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	go func() {
		container.Logger.Info("Main", "Starting Consumer Service", nil)
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			container.Logger.Error("Main", "Consumer Service failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
