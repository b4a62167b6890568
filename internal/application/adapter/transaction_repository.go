// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// TransactionRepository is the ledger store. Operations are scoped to single
// transaction records; enrichment with category, type and user names is the
// caller's job.
type TransactionRepository interface {
	// Insert persists a new transaction.
	Insert(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// UpdateCategory repoints an existing transaction at a different category
	// and returns the updated record.
	UpdateCategory(ctx context.Context, id, categoryID uuid.UUID) (*entity.Transaction, error)

	// Delete removes a transaction and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUserAndDateRange retrieves all transactions of a user dated
	// within [start, end], newest first.
	FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// FindByUserAndCategory retrieves all transactions of a user in the
	// given category, newest first.
	FindByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.Transaction, error)

	// FindByUserAndDescription retrieves all transactions of a user whose
	// description contains the given substring (case-insensitive), newest first.
	FindByUserAndDescription(ctx context.Context, userID uuid.UUID, substring string) ([]*entity.Transaction, error)

	// CountByCategory counts transactions referencing a category. Used to
	// guard category deletion.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
