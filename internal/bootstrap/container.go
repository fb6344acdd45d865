package bootstrap

import (
	"context"
	"log"

	"ai-code-debugger/internal/config"
	"ai-code-debugger/internal/controller"
	"ai-code-debugger/internal/pkg/logger"
	"ai-code-debugger/internal/repository/implementation"
	"ai-code-debugger/internal/repository/memory"
	"ai-code-debugger/internal/service"
	"ai-code-debugger/internal/websocket"
	"ai-code-debugger/pkg/llm/factory"
	pktNats "ai-code-debugger/pkg/nats"
	"ai-code-debugger/pkg/usage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AnalysisController controller.IAnalysisController
	ChatController     controller.IChatController
	ClientController   controller.IClientController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewProvider(cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory per-client workspace storage
	workspaceRepo := memory.NewWorkspaceRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Usage quotas
	limiter := usage.NewLimiter(rdb, sysLogger)

	// Repositories
	analysisRepo := implementation.NewAnalysisRepository(db)
	chatSessionRepo := implementation.NewChatSessionRepository(db)
	chatMessageRepo := implementation.NewChatMessageRepository(db)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.AnalysisTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.AnalysisTopic,
		analysisRepo,
		natsPub,
		wsHub,
		sysLogger,
	)

	analysisService := service.NewAnalysisService(
		analysisRepo,
		workspaceRepo,
		publisherService,
		llmProvider,
		limiter,
		cfg.Limits.AnalyzeDailyLimit,
		sysLogger,
	)

	chatService := service.NewChatService(
		chatSessionRepo,
		chatMessageRepo,
		workspaceRepo,
		llmProvider,
		limiter,
		cfg.Limits.ChatDailyLimit,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		AnalysisController: controller.NewAnalysisController(analysisService),
		ChatController:     controller.NewChatController(chatService),
		ClientController:   controller.NewClientController(cfg.App.JWTSecret),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
