// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// ListByCategoryInput represents the input for a category list read.
type ListByCategoryInput struct {
	UserID       uuid.UUID
	CategoryName string
}

// ListByCategoryOutput represents the output of a category list read.
type ListByCategoryOutput struct {
	View TransactionListView
}

// ListByCategoryUseCase serves the per-category list view through the
// cache, keyed by the resolved category id.
type ListByCategoryUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	userRepo        adapter.UserRepository
	cache           adapter.ViewCache
}

// NewListByCategoryUseCase creates a new ListByCategoryUseCase instance.
func NewListByCategoryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	cache adapter.ViewCache,
) *ListByCategoryUseCase {
	return &ListByCategoryUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		cache:           cache,
	}
}

// Execute performs the read.
func (uc *ListByCategoryUseCase) Execute(ctx context.Context, input ListByCategoryInput) (*ListByCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByUserAndName(ctx, input.UserID, entity.NormalizeCategoryName(input.CategoryName))
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

	key := adapter.CategoryViewKey(input.UserID, category.ID)

	var cached TransactionListView
	if cacheGet(ctx, uc.cache, key, &cached) {
		return &ListByCategoryOutput{View: cached}, nil
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	transactions, err := uc.transactionRepo.FindByUserAndCategory(ctx, input.UserID, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by category: %w", err)
	}

	names := map[uuid.UUID]string{category.ID: category.Name}
	view := newTransactionListView(transactions, user.Name, names)
	cachePut(ctx, uc.cache, key, view, 0)

	return &ListByCategoryOutput{View: view}, nil
}
