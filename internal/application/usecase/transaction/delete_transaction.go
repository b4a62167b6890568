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

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionOutput carries the deleted record back to the caller.
type DeleteTransactionOutput struct {
	Transaction *entity.Transaction
}

// DeleteTransactionUseCase removes a ledger entry, drops every cached view
// it appeared in, and rolls the owner's monthly expense aggregate back by
// the deleted amount.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	limitRepo       adapter.MonthlyLimitRepository
	cache           adapter.ViewCache
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	limitRepo adapter.MonthlyLimitRepository,
	cache adapter.ViewCache,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		limitRepo:       limitRepo,
		cache:           cache,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
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
			"not authorized to delete this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	deleted, err := uc.transactionRepo.Delete(ctx, input.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}

	cacheInvalidate(ctx, uc.cache, adapter.SingleViewKey(input.UserID, deleted.ID))
	invalidateListViews(ctx, uc.cache, input.UserID, deleted.CategoryID)

	if deleted.IsExpense() {
		// No-op when the owner has no active limit.
		if _, err := uc.limitRepo.ApplyDelta(ctx, input.UserID, -deleted.Amount); err != nil {
			slog.Error("Failed to update monthly expense aggregate",
				"user_id", input.UserID,
				"amount", -deleted.Amount,
				"error", err,
			)
		}
	}

	slog.Info("Transaction deleted",
		"transaction_id", deleted.ID,
		"user_id", input.UserID,
	)

	return &DeleteTransactionOutput{Transaction: deleted}, nil
}
