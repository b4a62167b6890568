// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// GetTransactionInput represents the input for a single transaction read.
type GetTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// GetTransactionOutput represents the output of a single transaction read.
type GetTransactionOutput struct {
	Transaction TransactionView
}

// GetTransactionUseCase serves the single-transaction view through the
// cache, falling back to the store and repopulating on a miss.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	userRepo        adapter.UserRepository
	cache           adapter.ViewCache
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	cache adapter.ViewCache,
) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		cache:           cache,
	}
}

// Execute performs the read.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	key := adapter.SingleViewKey(input.UserID, input.TransactionID)

	var cached TransactionView
	if cacheGet(ctx, uc.cache, key, &cached) {
		return &GetTransactionOutput{Transaction: cached}, nil
	}

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

	if transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to read this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, transaction.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	category, err := uc.categoryRepo.FindByID(ctx, transaction.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	view := newTransactionView(transaction, user.Name, category.Name)
	cachePut(ctx, uc.cache, key, view, 0)

	return &GetTransactionOutput{Transaction: view}, nil
}
