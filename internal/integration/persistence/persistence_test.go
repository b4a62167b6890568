// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-ledger/backend/internal/domain/entity"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
)

// setupTestDB opens a private in-memory database with the full schema.
// Each test gets its own instance, so there is no cross-test state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm connection: %v", err)
	}

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.MonthlyLimitModel{},
		&model.EmailQueueModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *entity.User {
	t.Helper()
	user := entity.NewUser(email, name, "hashed-password")
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *entity.Category {
	t.Helper()
	category := entity.NewCategory(userID, name)
	if err := NewCategoryRepository(db).Create(context.Background(), category); err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return category
}

func seedTransaction(t *testing.T, db *gorm.DB, userID, categoryID uuid.UUID, amount int64, description string, date time.Time) *entity.Transaction {
	t.Helper()
	transaction := entity.NewTransaction(userID, categoryID, entity.TransactionTypeExpense, amount, description)
	transaction.Date = date
	if err := NewTransactionRepository(db).Insert(context.Background(), transaction); err != nil {
		t.Fatalf("failed to seed transaction %s: %v", description, err)
	}
	return transaction
}
