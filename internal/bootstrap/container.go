package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/controller"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/repository/contract"
	"faq-chatbot-be/internal/repository/implementation"
	"faq-chatbot-be/internal/repository/memory"
	"faq-chatbot-be/internal/service"
	"faq-chatbot-be/pkg/embedding"
	"faq-chatbot-be/pkg/llm/factory"
	"faq-chatbot-be/pkg/rag/search"
	"faq-chatbot-be/pkg/rag/validator"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := initLLMLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIEmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.OpenAIEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Session Store
	var memoryRepo contract.ChatMemoryRepository
	if cfg.Chat.SessionStore == "memory" {
		memoryRepo = memory.NewChatMemoryRepository(cfg.Chat.SessionTTL, cfg.Chat.MaxSessionMessages)
		log.Printf("[INFO] Using Session Store: MEMORY")
	} else {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		memoryRepo = implementation.NewRedisChatMemoryRepository(rdb, cfg.Chat.SessionTTL, cfg.Chat.MaxSessionMessages)
		log.Printf("[INFO] Using Session Store: REDIS")
	}

	// 5. Retrieval + Validation Pipeline
	indexRepo := implementation.NewKnowledgeEmbeddingRepository(db, embeddingProvider)
	fusionEngine := search.NewEngine(indexRepo, llmLogger)

	relValidator := validator.New(
		validator.NewRunner(llmProvider),
		[]validator.Strategy{
			{Name: "direct", Weight: 1.0, Template: constant.DirectValidationPrompt},
			{Name: "indirect", Weight: 0.8, Template: constant.IndirectValidationPrompt},
		},
		llmLogger,
	)

	pipelineCfg := service.DefaultChatPipelineConfig()
	pipelineCfg.HistoryLimit = cfg.Chat.HistoryLimit
	pipelineCfg.RetrievalLimit = cfg.Chat.RetrievalLimit
	pipelineCfg.DistanceThreshold = cfg.Chat.DistanceThreshold

	// 6. Services
	chatService := service.NewChatService(llmProvider, relValidator, fusionEngine, memoryRepo, pipelineCfg, llmLogger)
	knowledgeService := service.NewKnowledgeService(pubSub, cfg.Chat.KnowledgeTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.Chat.KnowledgeTopic, fusionEngine, sysLogger)

	// 7. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		ConsumerService:     consumerService,
		Logger:              sysLogger,
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
