// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// DefaultSearchTTL bounds the staleness of cached search results. Free-text
// views cannot be targeted by invalidation, so they expire instead.
const DefaultSearchTTL = 45 * time.Second

// SearchTransactionsInput represents the input for a description search.
type SearchTransactionsInput struct {
	UserID uuid.UUID
	Query  string
}

// SearchTransactionsOutput represents the output of a description search.
type SearchTransactionsOutput struct {
	View TransactionListView
}

// SearchTransactionsUseCase serves substring searches over transaction
// descriptions with short-TTL caching.
type SearchTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	userRepo        adapter.UserRepository
	cache           adapter.ViewCache
	ttl             time.Duration
}

// NewSearchTransactionsUseCase creates a new SearchTransactionsUseCase
// instance. A non-positive ttl falls back to DefaultSearchTTL.
func NewSearchTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	cache adapter.ViewCache,
	ttl time.Duration,
) *SearchTransactionsUseCase {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	return &SearchTransactionsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		cache:           cache,
		ttl:             ttl,
	}
}

// Execute performs the search.
func (uc *SearchTransactionsUseCase) Execute(ctx context.Context, input SearchTransactionsInput) (*SearchTransactionsOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"search query must not be empty",
			nil,
		)
	}

	key := adapter.QueryViewKey(input.UserID, query)

	var cached TransactionListView
	if cacheGet(ctx, uc.cache, key, &cached) {
		return &SearchTransactionsOutput{View: cached}, nil
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	transactions, err := uc.transactionRepo.FindByUserAndDescription(ctx, input.UserID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}

	categoryNames, err := categoryNamesByID(ctx, uc.categoryRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	view := newTransactionListView(transactions, user.Name, categoryNames)
	cachePut(ctx, uc.cache, key, view, uc.ttl)

	return &SearchTransactionsOutput{View: view}, nil
}
