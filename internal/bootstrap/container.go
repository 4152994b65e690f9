package bootstrap

import (
	"context"
	"log"
	"time"

	"clinivoice-be/internal/config"
	"clinivoice-be/internal/controller"
	"clinivoice-be/internal/pkg/logger"
	"clinivoice-be/internal/repository/memory"
	"clinivoice-be/internal/service"
	"clinivoice-be/internal/websocket"
	"clinivoice-be/pkg/llm/factory"
	pkgNats "clinivoice-be/pkg/nats"
	"clinivoice-be/pkg/soap"
	"clinivoice-be/pkg/voice"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	SOAPController    controller.ISOAPController

	// Background Services (Exposed for main.go to run)
	BroadcastService service.IBroadcastService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		// Degraded mode: note generation falls back to deterministic sections.
		log.Printf("[WARN] LLM provider unavailable, SOAP generation will use fallback: %v", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 4. In-Memory Session Registry
	sessionRepo := memory.NewSessionRepository()

	// 5. Infrastructure
	// NATS (optional)
	var natsPub *pkgNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pkgNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// Redis (optional, cross-instance websocket fan-out)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
			rdb = nil
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/live_updates.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Voice Pipeline
	transcriber := voice.NewRemoteTranscriber(
		cfg.Recognizer.BaseURL,
		time.Duration(cfg.Recognizer.TimeoutSeconds)*time.Second,
		sysLogger,
	)
	processor := voice.NewProcessor(
		transcriber,
		voice.NewWavDecoder(),
		voice.NewExtractor(),
		voice.NewRuleBasedClassifier(),
		sysLogger,
	)

	// 7. SOAP Generator
	generator := soap.NewGenerator(
		llmProvider,
		time.Duration(cfg.Ai.TimeoutSeconds)*time.Second,
		cfg.Ai.MaxTokens,
		cfg.Ai.Temperature,
		sysLogger,
	)

	// 8. Services
	sessionService := service.NewSessionService(sessionRepo, processor, pubSub, natsPub, sysLogger)
	soapService := service.NewSOAPService(sessionRepo, generator, sysLogger)
	broadcastService := service.NewBroadcastService(pubSub, wsHub, wsLogger)

	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		SOAPController:    controller.NewSOAPController(soapService),
		BroadcastService:  broadcastService,
		WebSocketHub:      wsHub,
	}
}
