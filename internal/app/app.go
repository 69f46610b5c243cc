package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student_dashboard_backend/internal/config"
	"student_dashboard_backend/internal/controller"
	"student_dashboard_backend/internal/repository"
	"student_dashboard_backend/internal/repository/memory"
	"student_dashboard_backend/internal/service"
	"student_dashboard_backend/internal/util"
	"student_dashboard_backend/pkg/configwatcher"
	"student_dashboard_backend/pkg/database"
	"student_dashboard_backend/pkg/logger"
	"student_dashboard_backend/pkg/monitoring"
	"student_dashboard_backend/pkg/security"
	"student_dashboard_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	// DB and Redis are nil when the corresponding backend is not in use.
	DB    *gorm.DB
	Redis *redis.Client

	// ConfigDir is watched for config.yaml changes while the server runs.
	ConfigDir string

	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         repository.UserStore
	quiz         repository.QuizStore
	attempt      repository.AttemptStore
	announcement repository.AnnouncementStore
	stats        repository.StatsCache
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	quiz         *service.QuizService
	attempt      *service.AttemptService
	announcement *service.AnnouncementService
}

type controllers struct {
	auth         *controller.AuthController
	quiz         *controller.QuizController
	attempt      *controller.AttemptController
	announcement *controller.AnnouncementController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories() *repositories {
	repos := &repositories{}
	if a.DB == nil {
		repos.user = memory.NewUserRepository()
		repos.quiz = memory.NewQuizRepository()
		repos.attempt = memory.NewAttemptRepository()
		repos.announcement = memory.NewAnnouncementRepository()
	} else {
		repos.user = repository.NewUserRepository(a.DB)
		repos.quiz = repository.NewQuizRepository(a.DB)
		repos.attempt = repository.NewAttemptRepository(a.DB)
		repos.announcement = repository.NewAnnouncementRepository(a.DB)
	}

	// A nil *RedisStatsCache must not end up inside the interface.
	ttl := time.Duration(a.Config.Redis.StatsTTLSeconds) * time.Second
	if a.Redis != nil {
		repos.stats = repository.NewRedisStatsCache(a.Redis, ttl)
	} else {
		repos.stats = memory.NewStatsCache(ttl)
	}
	return repos
}

func (a *App) initServices(repos *repositories) *services {
	s := &services{}
	s.storage = service.NewStorageService(&a.Config.Storage)
	s.auth = service.NewAuthService(repos.user, a.Config)
	s.quiz = service.NewQuizService(repos.quiz)
	s.attempt = service.NewAttemptService(repos.quiz, repos.attempt, repos.stats)
	s.announcement = service.NewAnnouncementService(repos.announcement, s.storage)
	return s
}

func (a *App) initControllers(s *services) *controllers {
	health := controller.NewHealthController(nil)
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			health = controller.NewHealthController(sqlDB)
		}
	}

	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		quiz:         controller.NewQuizController(s.quiz, s.attempt),
		attempt:      controller.NewAttemptController(s.attempt),
		announcement: controller.NewAnnouncementController(s.announcement),
		health:       health,
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.limiter.Handler())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// connect opens the database and, when enabled, redis. The memory driver
// needs neither.
func (a *App) connect() error {
	cfg := a.Config
	if cfg.Database.Driver != util.DriverMemory {
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
		if err != nil {
			return err
		}
		a.DB = db

		if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
			if err := database.Migrate(db); err != nil {
				return err
			}
		}
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, caching statistics in process", zap.Error(err))
		} else {
			a.Redis = rdb
		}
	}
	return nil
}

// NewApp connects the configured backends and builds the HTTP router. With
// cfg.MigrateOnly set it stops after migrating.
func NewApp(cfg *config.Config) (*App, error) {
	gin.SetMode(cfg.Server.Mode)
	controller.RegisterValidators()

	app := &App{Config: cfg, ConfigDir: "configs"}
	if err := app.connect(); err != nil {
		return nil, err
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	repos := app.initRepositories()
	services := app.initServices(repos)
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	app.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateWindow())
	app.RegisterConfigCallback(logger.SetLevel)
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.limiter.SetLimit(newCfg.RateLimit.MaxRequests, newCfg.RateWindow())
	})

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app, nil
}

func (a *App) reload(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// Close releases background resources. The server must already be stopped.
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopWatch := make(chan struct{})
	go func() {
		if err := configwatcher.WatchConfig(a.ConfigDir, a.reload, stopWatch); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	close(stopWatch)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close()

	logger.Log.Info("Server exiting")
}
