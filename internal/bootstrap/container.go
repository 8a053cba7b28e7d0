package bootstrap

import (
	"context"
	"log"

	"ai-quizforge-be/internal/config"
	"ai-quizforge-be/internal/constant"
	"ai-quizforge-be/internal/controller"
	"ai-quizforge-be/internal/handler"
	"ai-quizforge-be/internal/pkg/logger"
	"ai-quizforge-be/internal/repository/memory"
	"ai-quizforge-be/internal/repository/unitofwork"
	"ai-quizforge-be/internal/service"
	"ai-quizforge-be/internal/websocket"
	"ai-quizforge-be/pkg/llm/gateway"
	pktNats "ai-quizforge-be/pkg/nats"
	"ai-quizforge-be/pkg/puzzle"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QuizSessionController controller.IQuizSessionController
	PuzzleController      controller.IPuzzleController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	// Pipeline logs get their own bus: blocking publish keeps the step
	// records in emit order, which would stall the generation trigger if
	// it shared this config with the work queue above.
	pipelineBus := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: true},
		watermillLogger,
	)

	// LLM Gateway
	llmProvider := gateway.NewGatewayProvider(
		cfg.Gateway.BaseURL,
		cfg.Gateway.APIKey,
		cfg.Gateway.DefaultModel,
	)
	log.Printf("[INFO] Using LLM gateway %s (default model %s)", cfg.Gateway.BaseURL, cfg.Gateway.DefaultModel)

	// In-process generation locks
	lockRepo := memory.NewLockRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(constant.TopicGenerateQuestions, pubSub)
	generationService := service.NewGenerationService(uowFactory, llmProvider, lockRepo, natsPub, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.TopicGenerateQuestions,
		generationService,
		sysLogger,
	)

	sessionService := service.NewQuizSessionService(
		uowFactory,
		generationService,
		publisherService,
		cfg.Gateway.DefaultModel,
		sysLogger,
	)

	puzzleGenerator := puzzle.NewGenerator(llmProvider, cfg.Gateway.DefaultModel)
	puzzleService := service.NewPuzzleService(puzzleGenerator, pipelineBus, sysLogger)

	// 3.5 Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		QuizSessionController: controller.NewQuizSessionController(sessionService),
		PuzzleController:      controller.NewPuzzleController(puzzleService),
		ConsumerService:       consumerService,
		NotificationHandler:   notifHandler,
		WebSocketHub:          wsHub,
	}
}
