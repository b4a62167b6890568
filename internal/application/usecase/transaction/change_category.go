// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// ChangeCategoryInput represents the input for reassigning a transaction's category.
type ChangeCategoryInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	CategoryName  string
}

// ChangeCategoryOutput carries the updated record back to the caller.
type ChangeCategoryOutput struct {
	Transaction *entity.Transaction
}

// ChangeCategoryUseCase repoints a ledger entry at a different category of
// the same owner. The amount and type are untouched, so the monthly
// aggregate stays as is; both the old and the new category list views are
// stale afterwards and get dropped.
type ChangeCategoryUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.ViewCache
}

// NewChangeCategoryUseCase creates a new ChangeCategoryUseCase instance.
func NewChangeCategoryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ViewCache,
) *ChangeCategoryUseCase {
	return &ChangeCategoryUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
	}
}

// Execute performs the category reassignment.
func (uc *ChangeCategoryUseCase) Execute(ctx context.Context, input ChangeCategoryInput) (*ChangeCategoryOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	newCategory, err := uc.categoryRepo.FindByUserAndName(ctx, input.UserID, entity.NormalizeCategoryName(input.CategoryName))
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found for user",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	if transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to update this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	oldCategoryID := transaction.CategoryID

	updated, err := uc.transactionRepo.UpdateCategory(ctx, input.TransactionID, newCategory.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction category: %w", err)
	}

	// The single view now carries a stale category name; the old category
	// view no longer contains this entry and the new one does.
	cacheInvalidate(ctx, uc.cache, adapter.SingleViewKey(input.UserID, updated.ID))
	invalidateListViews(ctx, uc.cache, input.UserID, oldCategoryID, newCategory.ID)

	slog.Info("Transaction category changed",
		"transaction_id", updated.ID,
		"user_id", input.UserID,
		"category_id", newCategory.ID,
	)

	return &ChangeCategoryOutput{Transaction: updated}, nil
}
