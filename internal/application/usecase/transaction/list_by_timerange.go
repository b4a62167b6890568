// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// ListByTimeRangeInput represents the input for a time-range list read.
type ListByTimeRangeInput struct {
	UserID uuid.UUID
	Label  string
}

// ListByTimeRangeOutput represents the output of a time-range list read.
type ListByTimeRangeOutput struct {
	View TransactionListView
}

// ListByTimeRangeUseCase serves the DAY/WEEK/MONTH list views through the
// cache, materializing from the ledger on a miss.
type ListByTimeRangeUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	userRepo        adapter.UserRepository
	cache           adapter.ViewCache
}

// NewListByTimeRangeUseCase creates a new ListByTimeRangeUseCase instance.
func NewListByTimeRangeUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	cache adapter.ViewCache,
) *ListByTimeRangeUseCase {
	return &ListByTimeRangeUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		cache:           cache,
	}
}

// Execute performs the read.
func (uc *ListByTimeRangeUseCase) Execute(ctx context.Context, input ListByTimeRangeInput) (*ListByTimeRangeOutput, error) {
	timeRange, ok := ParseTimeRange(input.Label)
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTimeRange,
			"time range must be DAY, WEEK or MONTH",
			domainerror.ErrInvalidTimeRange,
		)
	}

	key := adapter.TimeRangeViewKey(input.UserID, string(timeRange))

	var cached TransactionListView
	if cacheGet(ctx, uc.cache, key, &cached) {
		return &ListByTimeRangeOutput{View: cached}, nil
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

	start, end := timeRange.Bounds(time.Now().UTC())

	transactions, err := uc.transactionRepo.FindByUserAndDateRange(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by time range: %w", err)
	}

	categoryNames, err := categoryNamesByID(ctx, uc.categoryRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	view := newTransactionListView(transactions, user.Name, categoryNames)
	cachePut(ctx, uc.cache, key, view, 0)

	return &ListByTimeRangeOutput{View: view}, nil
}

// categoryNamesByID loads the owner's categories once and indexes them by id
// for list enrichment. Categories are low cardinality per user.
func categoryNamesByID(ctx context.Context, repo adapter.CategoryRepository, userID uuid.UUID) (map[uuid.UUID]string, error) {
	categories, err := repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names, nil
}
