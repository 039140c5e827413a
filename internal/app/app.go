package app

import (
	"cacei_stats_backend/internal/config"
	"cacei_stats_backend/internal/controller"
	"cacei_stats_backend/internal/middleware"
	"cacei_stats_backend/internal/model"
	"cacei_stats_backend/internal/repository"
	"cacei_stats_backend/internal/service"
	"cacei_stats_backend/pkg/configwatcher"
	"cacei_stats_backend/pkg/database"
	"cacei_stats_backend/pkg/logger"
	"cacei_stats_backend/pkg/monitoring"
	"cacei_stats_backend/pkg/security"
	"cacei_stats_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *gorm.DB
	Catalog model.SubjectCatalog

	services        *services
	configCallbacks []func(*config.Config)
	tracer          *sdktrace.TracerProvider

	// 后台任务（限流清理、配置监听）的生命周期
	ctx    context.Context
	cancel context.CancelFunc
}

type repositories struct {
	stats *repository.StatsRepository
}

type services struct {
	stats  *service.StatsService
	meta   *service.MetaService
	health *service.HealthService
}

type controllers struct {
	stats  *controller.StatsController
	meta   *controller.MetaController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// ResolveCatalog 启动时确定科目名称目录，探测失败时退化为无目录
func ResolveCatalog(ctx context.Context, db *gorm.DB, cfg config.CatalogConfig) model.SubjectCatalog {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	catalog, err := repository.NewCatalogRepository(db).Resolve(ctx, cfg)
	if err != nil {
		logger.Log.Warn("Subject catalog probe failed, names disabled", zap.Error(err))
		return model.SubjectCatalog{}
	}
	logger.Log.Info("Subject catalog resolved", zap.String("catalog", catalog.String()))
	return catalog
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		stats: repository.NewStatsRepository(db, a.Catalog),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}
	s.stats = service.NewStatsService(repos.stats, cfg.Grading)
	s.meta = service.NewMetaService(repos.stats, s.stats)
	s.health = service.NewHealthService(repos.stats, a.Catalog)

	a.RegisterConfigCallback(func(c *config.Config) {
		s.stats.UpdateDefaults(c.Grading)
	})
	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		stats:  controller.NewStatsController(s.stats),
		meta:   controller.NewMetaController(s.meta),
		health: controller.NewHealthController(s.health),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 连接数据库、解析科目目录并装配路由
func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	catalog := ResolveCatalog(context.Background(), db, cfg.Catalog)
	return newApp(cfg, db, catalog), nil
}

func newApp(cfg *config.Config, db *gorm.DB, catalog model.SubjectCatalog) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:  cfg,
		DB:      db,
		Catalog: catalog,
		ctx:     ctx,
		cancel:  cancel,
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	app.registerRoutes(router, controllers)
	return app
}

func (a *App) startBackgroundTasks() {
	if a.Config.ConfigPath == "" {
		return
	}
	go func() {
		if err := configwatcher.WatchConfig(a.ctx, a.Config.ConfigPath, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.startBackgroundTasks()

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		a.Close()
		return fmt.Errorf("listen: %w", err)
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	a.Close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

// Close 停止后台任务并释放数据库与追踪资源
func (a *App) Close() {
	a.cancel()
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	_ = logger.Log.Sync()
}
