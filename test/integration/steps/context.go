// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/finance-ledger/backend/internal/application/usecase/auth"
	"github.com/finance-ledger/backend/internal/application/usecase/category"
	"github.com/finance-ledger/backend/internal/application/usecase/limit"
	"github.com/finance-ledger/backend/internal/application/usecase/transaction"
	"github.com/finance-ledger/backend/internal/infra/server/router"
	"github.com/finance-ledger/backend/internal/integration/adapters"
	"github.com/finance-ledger/backend/internal/integration/cache"
	"github.com/finance-ledger/backend/internal/integration/email"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-ledger/backend/internal/integration/persistence"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
	"github.com/finance-ledger/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
const testSearchTTL = 45 * time.Second

var serverInit sync.Once
var testDB *mock.Db
var testRedis *redis.Client
var testServerPort int
var portInit sync.Once

func initializeSuite() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		testDB = mock.NewDb(map[string]any{
			"users":          &model.UserModel{},
			"categories":     &model.CategoryModel{},
			"transactions":   &model.TransactionModel{},
			"monthly_limits": &model.MonthlyLimitModel{},
			"email_queue":    &model.EmailQueueModel{},
		})
		testRedis = mock.NewRedis()
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// startServer wires the full application against the in-memory database and
// redis, then serves it on the suite's port. The email worker is not
// started: delivery is queue-backed, so scenarios assert on email_queue
// rows instead of outbound traffic.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			userRepo := persistence.NewUserRepository(testDB.DbConn)
			categoryRepo := persistence.NewCategoryRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
			limitRepo := persistence.NewMonthlyLimitRepository(testDB.DbConn)
			emailQueueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)

			viewCache := cache.NewRedisViewCache(testRedis)
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, time.Hour)
			notifier := email.NewNotifier(emailQueueRepo)

			registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

			createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
			listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
			deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo)

			createTransactionUseCase := transaction.NewCreateTransactionUseCase(
				transactionRepo, categoryRepo, userRepo, limitRepo, viewCache, notifier,
			)
			getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo, categoryRepo, userRepo, viewCache)
			deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, limitRepo, viewCache)
			changeCategoryUseCase := transaction.NewChangeCategoryUseCase(transactionRepo, categoryRepo, viewCache)
			listByTimeRangeUseCase := transaction.NewListByTimeRangeUseCase(transactionRepo, categoryRepo, userRepo, viewCache)
			listByCategoryUseCase := transaction.NewListByCategoryUseCase(transactionRepo, categoryRepo, userRepo, viewCache)
			searchTransactionsUseCase := transaction.NewSearchTransactionsUseCase(
				transactionRepo, categoryRepo, userRepo, viewCache, testSearchTTL,
			)

			setLimitUseCase := limit.NewSetLimitUseCase(limitRepo)
			changeLimitUseCase := limit.NewChangeLimitUseCase(limitRepo)
			deleteLimitUseCase := limit.NewDeleteLimitUseCase(limitRepo)

			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
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

			loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				categoryController,
				transactionController,
				limitController,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for the server to come up
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}
