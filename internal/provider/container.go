package provider

import (
	"context"
	"time"

	"github.com/officer-registry/internal/audit"
	"github.com/officer-registry/internal/authz"
	"github.com/officer-registry/internal/cache"
	"github.com/officer-registry/internal/config"
	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/logger"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/queue"
	"github.com/officer-registry/internal/repository"
	"github.com/officer-registry/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const redisPingTimeout = 2 * time.Second

// Deps 外部资源，测试时可直接注入
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Queue    *queue.Client
	Registry *prometheus.Registry
}

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	QueueClient *queue.Client
	Registry    *prometheus.Registry

	// 基础设施
	Views         *cache.ReadThrough
	AuditRecorder audit.Recorder
	AuditWorker   *audit.AsyncRecorder

	// Repositories
	UserRepo       repository.UserRepository
	OfficerRepo    repository.OfficerRepository
	EvaluationRepo repository.EvaluationRepository
	AuditLogRepo   repository.AuditLogRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	UserService       *service.UserService
	OfficerService    *service.OfficerService
	EvaluationService *service.EvaluationService
	AnalyticsService  *service.AnalyticsService
	AuditService      *service.AuditService
}

// NewContainer 基于全局数据库连接与配置初始化容器
func NewContainer(cfg *config.Config) *Container {
	redisClient := cache.NewRedisClient(&cfg.Redis)
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnw("provider_init_redis_failed", "error", err, "fallback", "compute_on_miss")
		}
		cancel()
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return Build(cfg, Deps{
		DB:       models.DB,
		Redis:    redisClient,
		Queue:    queueClient,
		Registry: registry,
	})
}

// Build 用给定资源组装容器
func Build(cfg *config.Config, deps Deps) *Container {
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	c := &Container{
		Config:      cfg,
		DB:          deps.DB,
		Redis:       deps.Redis,
		QueueClient: deps.Queue,
		Registry:    deps.Registry,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化缓存与审计
	c.initViews()
	c.initAudit()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := c.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.OfficerRepo = repository.NewOfficerRepository(db)
	c.EvaluationRepo = repository.NewEvaluationRepository(db)
	c.AuditLogRepo = repository.NewAuditLogRepository(db)
}

func (c *Container) initViews() {
	var gateway cache.Gateway = cache.NopGateway{}
	if c.Redis != nil {
		gateway = cache.NewRedisGateway(c.Redis, c.Config.Redis.Prefix)
	} else {
		logger.Infow("provider_cache_disabled", "reason", "redis_not_configured")
	}
	instrumented := cache.NewInstrumented(gateway, cache.NewMetrics(c.Registry))
	c.Views = cache.NewReadThrough(instrumented, constants.AggregateCacheTTL, c.Config.Cache.OpTimeout())
}

func (c *Container) initAudit() {
	mode := c.Config.Audit.Mode
	if mode == constants.AuditModeOff {
		logger.Warnw("provider_audit_disabled", "mode", mode)
		c.AuditRecorder = audit.NopRecorder{}
		return
	}

	var store audit.Store = c.AuditLogRepo
	if mode == constants.AuditModeQueue {
		if c.QueueClient.Enabled() {
			store = audit.NewQueueStore(c.QueueClient)
		} else {
			logger.Warnw("provider_audit_queue_unavailable", "fallback", constants.AuditModeAsync)
		}
	}

	recorder := audit.NewAsyncRecorder(store, audit.AsyncOptions{
		Workers:      c.Config.Audit.Workers,
		QueueSize:    c.Config.Audit.QueueSize,
		WriteTimeout: c.Config.Audit.WriteTimeout(),
	}, audit.NewMetrics(c.Registry))
	c.AuditRecorder = recorder
	c.AuditWorker = recorder
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.AuditRecorder)
	c.UserService = service.NewUserService(c.UserRepo)
	c.OfficerService = service.NewOfficerService(c.OfficerRepo, c.Views, c.AuditRecorder)
	c.EvaluationService = service.NewEvaluationService(c.EvaluationRepo, c.OfficerRepo, c.UserRepo, c.Views, c.AuditRecorder)
	c.AnalyticsService = service.NewAnalyticsService(c.OfficerRepo, c.EvaluationRepo, c.Views)
	c.AuditService = service.NewAuditService(c.AuditLogRepo)
}
