// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
)

// TransactionView is the enriched, cache-eligible projection of a single
// ledger entry: names instead of foreign keys.
type TransactionView struct {
	ID          uuid.UUID `json:"id"`
	User        string    `json:"user"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// TransactionListView is a materialized list projection with expense and
// income amounts summed separately.
type TransactionListView struct {
	Transactions  []TransactionView `json:"transactions"`
	TotalExpenses int64             `json:"total_expenses"`
	TotalIncomes  int64             `json:"total_incomes"`
}

// newTransactionView assembles the enriched view of one transaction.
func newTransactionView(txn *entity.Transaction, userName, categoryName string) TransactionView {
	return TransactionView{
		ID:          txn.ID,
		User:        userName,
		Category:    categoryName,
		Type:        string(txn.Type),
		Amount:      txn.Amount,
		Description: txn.Description,
		Date:        txn.Date,
	}
}

// newTransactionListView assembles a list view, resolving category names
// through the given id-to-name map and accumulating per-type totals.
func newTransactionListView(txns []*entity.Transaction, userName string, categoryNames map[uuid.UUID]string) TransactionListView {
	view := TransactionListView{
		Transactions: make([]TransactionView, 0, len(txns)),
	}

	for _, txn := range txns {
		if txn.IsExpense() {
			view.TotalExpenses += txn.Amount
		} else {
			view.TotalIncomes += txn.Amount
		}
		view.Transactions = append(view.Transactions, newTransactionView(txn, userName, categoryNames[txn.CategoryID]))
	}

	return view
}

// cachePut serializes a view and stores it best effort: marshal or cache
// errors are logged and swallowed, never surfaced to the caller.
func cachePut(ctx context.Context, cache adapter.ViewCache, key adapter.ViewKey, view any, ttl time.Duration) {
	payload, err := json.Marshal(view)
	if err != nil {
		slog.Warn("Failed to serialize view for caching", "key", key, "error", err)
		return
	}
	if err := cache.Put(ctx, key, payload, ttl); err != nil {
		slog.Warn("Failed to populate view cache", "key", key, "error", err)
	}
}

// cacheGet attempts to load a view from the cache into dest. Cache errors
// degrade to a miss so reads fall through to the store.
func cacheGet(ctx context.Context, cache adapter.ViewCache, key adapter.ViewKey, dest any) bool {
	payload, found, err := cache.Get(ctx, key)
	if err != nil {
		slog.Warn("View cache lookup failed, falling back to store", "key", key, "error", err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		slog.Warn("Failed to decode cached view, falling back to store", "key", key, "error", err)
		return false
	}
	return true
}

// cacheInvalidate removes keys best effort.
func cacheInvalidate(ctx context.Context, cache adapter.ViewCache, keys ...adapter.ViewKey) {
	if err := cache.Invalidate(ctx, keys...); err != nil {
		slog.Warn("Failed to invalidate view cache", "keys", keys, "error", err)
	}
}

// invalidateListViews drops every list view a mutation for this owner can
// have touched: the three time-range views plus the view of each affected
// category. Search views are TTL-expired instead (the set of matching
// queries is not enumerable).
func invalidateListViews(ctx context.Context, cache adapter.ViewCache, userID uuid.UUID, categoryIDs ...uuid.UUID) {
	keys := []adapter.ViewKey{
		adapter.TimeRangeViewKey(userID, string(TimeRangeDay)),
		adapter.TimeRangeViewKey(userID, string(TimeRangeWeek)),
		adapter.TimeRangeViewKey(userID, string(TimeRangeMonth)),
	}
	for _, categoryID := range categoryIDs {
		keys = append(keys, adapter.CategoryViewKey(userID, categoryID))
	}
	cacheInvalidate(ctx, cache, keys...)
}
