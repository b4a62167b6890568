// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/config"
	"github.com/finance-ledger/backend/internal/application/usecase/auth"
	"github.com/finance-ledger/backend/internal/application/usecase/category"
	"github.com/finance-ledger/backend/internal/application/usecase/limit"
	"github.com/finance-ledger/backend/internal/application/usecase/transaction"
	"github.com/finance-ledger/backend/internal/infra/server/router"
	"github.com/finance-ledger/backend/internal/integration/adapters"
	"github.com/finance-ledger/backend/internal/integration/cache"
	"github.com/finance-ledger/backend/internal/integration/email"
	"github.com/finance-ledger/backend/internal/integration/email/templates"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	limitRepo := persistence.NewMonthlyLimitRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create Redis-backed view cache
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisClient := redis.NewClient(redisOpts)
	viewCache := cache.NewRedisViewCache(redisClient)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	notifier := email.NewNotifier(emailQueueRepo)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo)

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(
		transactionRepo, categoryRepo, userRepo, limitRepo, viewCache, notifier,
	)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo, categoryRepo, userRepo, viewCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, limitRepo, viewCache)
	changeCategoryUseCase := transaction.NewChangeCategoryUseCase(transactionRepo, categoryRepo, viewCache)
	listByTimeRangeUseCase := transaction.NewListByTimeRangeUseCase(transactionRepo, categoryRepo, userRepo, viewCache)
	listByCategoryUseCase := transaction.NewListByCategoryUseCase(transactionRepo, categoryRepo, userRepo, viewCache)
	searchTransactionsUseCase := transaction.NewSearchTransactionsUseCase(
		transactionRepo, categoryRepo, userRepo, viewCache, cfg.Cache.SearchTTL,
	)

	// Create limit use cases
	setLimitUseCase := limit.NewSetLimitUseCase(limitRepo)
	changeLimitUseCase := limit.NewChangeLimitUseCase(limitRepo)
	deleteLimitUseCase := limit.NewDeleteLimitUseCase(limitRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(registerUseCase, loginUseCase)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		getTransactionUseCase,
		deleteTransactionUseCase,
		changeCategoryUseCase,
		listByTimeRangeUseCase,
		listByCategoryUseCase,
		searchTransactionsUseCase,
	)

	limitController := controller.NewLimitController(
		setLimitUseCase,
		changeLimitUseCase,
		deleteLimitUseCase,
	)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create email delivery worker
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	workerConfig := email.DefaultWorkerConfig()
	if cfg.Email.PollInterval > 0 {
		workerConfig.PollInterval = cfg.Email.PollInterval
	}
	if cfg.Email.BatchSize > 0 {
		workerConfig.BatchSize = cfg.Email.BatchSize
	}
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, workerConfig)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		limitController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Router:      r,
		EmailWorker: emailWorker,
	}, nil
}
