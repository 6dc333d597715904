package bootstrap

import (
	"context"

	"insightgpt-be/internal/config"
	"insightgpt-be/internal/controller"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/internal/pkg/serverutils"
	"insightgpt-be/internal/repository/contract"
	"insightgpt-be/internal/repository/memory"
	redisrepo "insightgpt-be/internal/repository/redis"
	"insightgpt-be/internal/repository/unitofwork"
	"insightgpt-be/internal/service"
	pktNats "insightgpt-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QueryController    controller.IQueryController
	SessionController  controller.ISessionController
	QueryLogController controller.IQueryLogController
	HealthController   *controller.HealthController

	AuthMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	ctx := context.Background()

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Query pipeline
	p, err := NewPipeline(ctx, db, cfg, sysLogger)
	if err != nil {
		return nil, err
	}

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 4. Infrastructure
	sessionRepo := newSessionRepository(ctx, cfg.App.RedisURL, sysLogger, c)

	var eventPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.QueryLogTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.QueryLogTopic, uowFactory, sysLogger)

	sessionService := service.NewSessionService(sessionRepo, cfg.Auth.GuestPrefix, sysLogger)
	queryService := service.NewQueryService(
		p.Query,
		sessionService,
		publisherService,
		cfg.Pipeline.QueryTimeout,
		cfg.Auth.GuestPrefix,
		sysLogger,
	)
	ingestService := service.NewIngestService(p.Index, eventPublisher, int64(cfg.App.MaxUploadBytes), sysLogger)

	// 6. Controllers
	c.QueryController = controller.NewQueryController(queryService, ingestService, int64(cfg.App.MaxUploadBytes))
	c.SessionController = controller.NewSessionController(sessionService)
	c.QueryLogController = controller.NewQueryLogController(service.NewQueryLogService(uowFactory))
	c.HealthController = controller.NewHealthController()
	c.AuthMiddleware = serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)

	return c, nil
}

// newSessionRepository prefers Redis and falls back to process memory when
// Redis cannot be reached at startup.
func newSessionRepository(ctx context.Context, url string, log logger.ILogger, c *Container) contract.SessionRepository {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		log.Warn("Bootstrap", "Redis unavailable, sessions are kept in memory", map[string]interface{}{"error": err.Error()})
		return memory.NewSessionRepository()
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return redisrepo.NewSessionRepository(rdb)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
