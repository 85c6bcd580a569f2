package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"recruit_backend/database"
	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/auth"
	"recruit_backend/internal/config"
	"recruit_backend/internal/events"
	"recruit_backend/internal/handlers"
	"recruit_backend/internal/logger"
	"recruit_backend/internal/middleware"
	"recruit_backend/internal/ratelimit"
	"recruit_backend/internal/routes"
	"recruit_backend/internal/services"
	"recruit_backend/internal/validator"
	"recruit_backend/internal/workers"
	"recruit_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infrastructure - внешние зависимости, которые Run собирает из конфига,
// а тесты подставляют напрямую
type Infrastructure struct {
	Tokens       *auth.TokenManager
	Publisher    events.Publisher
	Policy       algorithms.TransitionPolicy
	LoginLimiter ratelimit.Limiter // nil - без ограничений
	ApplyLimiter ratelimit.Limiter
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	infra, cleanup, err := buildInfrastructure(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize infrastructure", "error", err)
	}
	defer cleanup()

	ginRouter, serviceContainer := SetupRouter(cfg, gormDB, infra)

	if err := seedFirstAdmin(gormDB, cfg, serviceContainer.AuthService); err != nil {
		// Если не удалось создать админа (проблемы с БД и т.д.) - не запускаем сервер
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := workers.NewJobOrderWorker(gormDB, serviceContainer.JobOrderService,
		time.Duration(cfg.Workers.JobOrderExpiryMinutes)*time.Minute)
	worker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

// SetupRouter собирает сервисы, хэндлеры и middleware
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, infra Infrastructure) (*gin.Engine, *services.ServiceContainer) {
	// 1. Инициализируем сервисы
	serviceContainer := services.NewServiceContainer(services.Dependencies{
		Tokens:    infra.Tokens,
		Publisher: infra.Publisher,
		Policy:    infra.Policy,
	})

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer, infra)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer
}

func buildInfrastructure(cfg *config.Config) (Infrastructure, func(), error) {
	infra := Infrastructure{
		Policy: algorithms.PolicyFromConfig(cfg.Workflow.StrictTransitions),
	}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWTTTL())
	if err != nil {
		return infra, cleanup, err
	}
	infra.Tokens = tokens

	if cfg.Redis.Addr != "" {
		client, err := ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return infra, cleanup, err
		}
		closers = append(closers, func() { _ = client.Close() })

		infra.LoginLimiter, infra.ApplyLimiter, err = buildLimiters(cfg, client)
		if err != nil {
			cleanup()
			return infra, func() {}, err
		}
		logger.Info("Rate limiting enabled", "redis", cfg.Redis.Addr)
	} else {
		logger.Warn("REDIS_ADDR is not set. Rate limiting disabled.")
	}

	if cfg.NATS.URL != "" {
		publisher, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix,
			time.Duration(cfg.NATS.TimeoutSec)*time.Second)
		if err != nil {
			cleanup()
			return infra, func() {}, err
		}
		closers = append(closers, publisher.Close)
		infra.Publisher = publisher
		logger.Info("Event publishing enabled", "nats", cfg.NATS.URL)
	} else {
		infra.Publisher = events.NoopPublisher{}
	}

	logger.Info("Transition policy", "policy", infra.Policy.String())
	return infra, cleanup, nil
}

func buildLimiters(cfg *config.Config, client *redis.Client) (ratelimit.Limiter, ratelimit.Limiter, error) {
	window := cfg.RateLimitWindow()
	login, err := ratelimit.NewFixedWindowLimiter(client, cfg.RateLimit.Prefix, "login", cfg.RateLimit.LoginPerMin, window)
	if err != nil {
		return nil, nil, err
	}
	apply, err := ratelimit.NewFixedWindowLimiter(client, cfg.RateLimit.Prefix, "apply", cfg.RateLimit.ApplyPerMin, window)
	if err != nil {
		return nil, nil, err
	}
	return login, apply, nil
}

func initializeHandlers(services *services.ServiceContainer, infra Infrastructure) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, middleware.AuthMiddleware(services.AuthService))

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService, infra.LoginLimiter),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, services.ProfileService),
		EmployerHandler:     handlers.NewEmployerHandler(baseHandler, services.EmployerService),
		JobOrderHandler:     handlers.NewJobOrderHandler(baseHandler, services.JobOrderService),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, services.ApplicationService, infra.ApplyLimiter),
		ComplaintHandler:    handlers.NewComplaintHandler(baseHandler, services.ComplaintService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
		AdminHandler: handlers.NewAdminHandler(baseHandler,
			services.AdminService,
			services.ApplicationService,
			services.JobOrderService,
			services.ComplaintService,
		),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config, authService services.AuthService) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set in .env. Skipping admin seeding.")
		return nil
	}

	created, err := authService.EnsureAdmin(db, cfg.FirstAdminEmail, cfg.FirstAdminPassword)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Successfully created first admin user", "email", cfg.FirstAdminEmail)
	} else {
		logger.Info("Admin user already exists. Skipping creation.", "email", cfg.FirstAdminEmail)
	}
	return nil
}
