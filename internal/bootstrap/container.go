package bootstrap

import (
	"log"

	"copygate-be/internal/config"
	"copygate-be/internal/controller"
	"copygate-be/internal/pkg/logger"
	"copygate-be/internal/repository/contract"
	"copygate-be/internal/repository/memory"
	"copygate-be/internal/repository/unitofwork"
	"copygate-be/internal/service"

	pktNats "copygate-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const gateRunTopic = "gate_run_persist"

type Container struct {
	// Controllers
	GateController    controller.IGateController
	ProfileController controller.IProfileController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure handles for shutdown
	Logger  logger.ILogger
	NatsPub *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Profile cache chain: in-process first, Redis second when configured
	caches := []contract.ProfileCache{memory.NewProfileCache()}
	if cfg.App.RedisURL != "" {
		redisCache, err := memory.NewRedisProfileCache(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to init Redis profile cache: %v", err)
		} else {
			caches = append(caches, redisCache)
		}
	}

	// 3. Services
	var eventPublisher service.IEventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	publisherService := service.NewPublisherService(pubSub, gateRunTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		gateRunTopic,
		uowFactory,
		eventPublisher,
	)

	profileService := service.NewProfileService(uowFactory, caches, eventPublisher, sysLogger)
	gateService := service.NewGateService(
		uowFactory,
		caches,
		publisherService,
		cfg.Gate,
		sysLogger,
		auditLogger,
	)

	// 4. Controllers
	return &Container{
		GateController:    controller.NewGateController(gateService),
		ProfileController: controller.NewProfileController(profileService),

		ConsumerService: consumerService,

		Logger:  sysLogger,
		NatsPub: natsPub,
	}
}
