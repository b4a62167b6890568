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

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID       uuid.UUID
	Amount       int64
	Description  string
	Type         string
	CategoryName string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase appends a new entry to the ledger and keeps every
// derived product in step: the cached read views affected by the insert are
// dropped, the owner's monthly expense aggregate is bumped, and a limit
// alert goes out when the bump crosses the configured threshold.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	userRepo        adapter.UserRepository
	limitRepo       adapter.MonthlyLimitRepository
	cache           adapter.ViewCache
	notifier        adapter.LimitNotifier
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	limitRepo adapter.MonthlyLimitRepository,
	cache adapter.ViewCache,
	notifier adapter.LimitNotifier,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		limitRepo:       limitRepo,
		cache:           cache,
		notifier:        notifier,
	}
}

// Execute performs the transaction creation. Steps after the ledger insert
// (cache population, invalidation, aggregate update, notification) are best
// effort and never roll the insert back.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.Amount <= 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be a positive integer in the smallest currency unit",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if len(input.Description) < entity.MinDescriptionLength || len(input.Description) > entity.MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDescriptionLength,
			fmt.Sprintf("description must be between %d and %d characters", entity.MinDescriptionLength, entity.MaxDescriptionLength),
			domainerror.ErrInvalidDescriptionLength,
		)
	}

	transactionType, ok := entity.ParseTransactionType(input.Type)
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be EXPENSE or INCOME",
			domainerror.ErrInvalidTransactionType,
		)
	}

	// Resolve the owning category by normalized name. Absence is fatal here:
	// a transaction never creates its category implicitly.
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

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnOwnerNotFound,
				"owner not found",
				domainerror.ErrOwnerNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	transaction := entity.NewTransaction(input.UserID, category.ID, transactionType, input.Amount, input.Description)

	if err := uc.transactionRepo.Insert(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	// The insert is committed; everything below is non-authoritative.
	view := newTransactionView(transaction, user.Name, category.Name)
	cachePut(ctx, uc.cache, adapter.SingleViewKey(input.UserID, transaction.ID), view, 0)
	invalidateListViews(ctx, uc.cache, input.UserID, category.ID)

	if transaction.IsExpense() {
		uc.trackExpense(ctx, user, transaction.Amount)
	}

	slog.Info("Transaction created",
		"transaction_id", transaction.ID,
		"user_id", input.UserID,
		"type", transaction.Type,
	)

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

// trackExpense bumps the owner's monthly aggregate and fires the limit alert
// when the new running total crosses the configured limit. Both steps are
// best effort relative to the ledger write.
func (uc *CreateTransactionUseCase) trackExpense(ctx context.Context, user *entity.User, amount int64) {
	limit, err := uc.limitRepo.ApplyDelta(ctx, user.ID, amount)
	if err != nil {
		slog.Error("Failed to update monthly expense aggregate",
			"user_id", user.ID,
			"amount", amount,
			"error", err,
		)
		return
	}
	if limit == nil {
		// No active limit: aggregate tracking is opt-in.
		return
	}

	if limit.IsOverLimit() {
		if err := uc.notifier.SendLimitReachedEmail(ctx, user.Name, user.Email); err != nil {
			slog.Warn("Failed to dispatch limit-reached notification",
				"user_id", user.ID,
				"error", err,
			)
		}
	}
}
