// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

func transactionErrorCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("expected a transaction error, got %v", err)
	}
	return txnErr.Code
}

func TestCreateTransaction_Validation(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		description string
		txnType     string
		wantCode    domainerror.TransactionErrorCode
	}{
		{
			name:        "zero amount",
			amount:      0,
			description: "Dog food",
			txnType:     "EXPENSE",
			wantCode:    domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:        "negative amount",
			amount:      -500,
			description: "Dog food",
			txnType:     "EXPENSE",
			wantCode:    domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:        "description too short",
			amount:      100,
			description: "ab",
			txnType:     "EXPENSE",
			wantCode:    domainerror.ErrCodeInvalidDescriptionLength,
		},
		{
			name:        "description too long",
			amount:      100,
			description: strings.Repeat("x", entity.MaxDescriptionLength+1),
			txnType:     "EXPENSE",
			wantCode:    domainerror.ErrCodeInvalidDescriptionLength,
		},
		{
			name:        "unknown type",
			amount:      100,
			description: "Dog food",
			txnType:     "TRANSFER",
			wantCode:    domainerror.ErrCodeInvalidTransactionType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture()
			uc := f.createUseCase()

			_, err := uc.Execute(context.Background(), CreateTransactionInput{
				UserID:       f.user.ID,
				Amount:       tt.amount,
				Description:  tt.description,
				Type:         tt.txnType,
				CategoryName: "Pets",
			})
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := transactionErrorCode(t, err); code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, code)
			}
			if len(f.transactionRepo.byID) != 0 {
				t.Error("expected no transaction to be persisted")
			}
		})
	}
}

func TestCreateTransaction_TypeAndNameNormalization(t *testing.T) {
	f := newLedgerFixture()
	uc := f.createUseCase()

	// Type and category name resolve case-insensitively with surrounding
	// whitespace ignored.
	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		UserID:       f.user.ID,
		Amount:       2500,
		Description:  "Dog food",
		Type:         " expense ",
		CategoryName: "  pets ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Transaction.Type != entity.TransactionTypeExpense {
		t.Errorf("expected type EXPENSE, got %s", out.Transaction.Type)
	}
	if out.Transaction.CategoryID != f.category.ID {
		t.Error("expected the transaction to resolve to the seeded category")
	}
}

func TestCreateTransaction_CategoryNotFound(t *testing.T) {
	f := newLedgerFixture()
	uc := f.createUseCase()

	// A category of another user must not be visible here.
	other := entity.NewUser("bob@example.com", "Bob", "hash")
	_ = f.userRepo.Create(context.Background(), other)
	otherCategory := entity.NewCategory(other.ID, "TRAVEL")
	_ = f.categoryRepo.Create(context.Background(), otherCategory)

	_, err := uc.Execute(context.Background(), CreateTransactionInput{
		UserID:       f.user.ID,
		Amount:       100,
		Description:  "Flight tickets",
		Type:         "EXPENSE",
		CategoryName: "Travel",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := transactionErrorCode(t, err); code != domainerror.ErrCodeTxnCategoryNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeTxnCategoryNotFound, code)
	}
}

func TestCreateTransaction_CachePopulationAndInvalidation(t *testing.T) {
	f := newLedgerFixture()
	uc := f.createUseCase()
	ctx := context.Background()

	// Pre-seed the list views that the insert must drop.
	staleKeys := []adapter.ViewKey{
		adapter.TimeRangeViewKey(f.user.ID, string(TimeRangeDay)),
		adapter.TimeRangeViewKey(f.user.ID, string(TimeRangeWeek)),
		adapter.TimeRangeViewKey(f.user.ID, string(TimeRangeMonth)),
		adapter.CategoryViewKey(f.user.ID, f.category.ID),
	}
	for _, key := range staleKeys {
		_ = f.cache.Put(ctx, key, []byte(`{}`), 0)
	}

	out, err := uc.Execute(ctx, CreateTransactionInput{
		UserID:       f.user.ID,
		Amount:       2500,
		Description:  "Dog food",
		Type:         "EXPENSE",
		CategoryName: "Pets",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	singleKey := adapter.SingleViewKey(f.user.ID, out.Transaction.ID)
	if !f.cache.has(singleKey) {
		t.Error("expected the single view to be populated after create")
	}
	if ttl, _ := f.cache.ttlOf(singleKey); ttl != 0 {
		t.Errorf("expected the single view to carry no expiry, got ttl %v", ttl)
	}

	for _, key := range staleKeys {
		if f.cache.has(key) {
			t.Errorf("expected key %s to be invalidated", key)
		}
	}
}

func TestCreateTransaction_CacheFailureDoesNotFailWrite(t *testing.T) {
	f := newLedgerFixture()
	f.cache.failing = true
	uc := f.createUseCase()

	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		UserID:       f.user.ID,
		Amount:       2500,
		Description:  "Dog food",
		Type:         "EXPENSE",
		CategoryName: "Pets",
	})
	if err != nil {
		t.Fatalf("expected the write to succeed despite cache failure, got %v", err)
	}
	if _, err := f.transactionRepo.FindByID(context.Background(), out.Transaction.ID); err != nil {
		t.Error("expected the transaction to be persisted")
	}
}

func TestCreateTransaction_AggregateAndNotification(t *testing.T) {
	createExpense := func(t *testing.T, f *ledgerFixture, amount int64) {
		t.Helper()
		_, err := f.createUseCase().Execute(context.Background(), CreateTransactionInput{
			UserID:       f.user.ID,
			Amount:       amount,
			Description:  "Dog food",
			Type:         "EXPENSE",
			CategoryName: "Pets",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("notifies once the running total crosses the limit", func(t *testing.T) {
		f := newLedgerFixture()
		f.setLimit(5000)

		createExpense(t, f, 3000)
		if len(f.notifier.sent) != 0 {
			t.Fatal("expected no notification below the limit")
		}

		createExpense(t, f, 2500)
		limit, _ := f.limitRepo.FindByUser(context.Background(), f.user.ID)
		if limit.TotalExpenses != 5500 {
			t.Errorf("expected running total 5500, got %d", limit.TotalExpenses)
		}
		if len(f.notifier.sent) != 1 {
			t.Fatalf("expected exactly one notification, got %d", len(f.notifier.sent))
		}
		if f.notifier.sent[0] != f.user.Email {
			t.Errorf("expected notification for %s, got %s", f.user.Email, f.notifier.sent[0])
		}
	})

	t.Run("total exactly at the limit does not notify", func(t *testing.T) {
		f := newLedgerFixture()
		f.setLimit(5000)

		createExpense(t, f, 5000)
		if len(f.notifier.sent) != 0 {
			t.Error("expected no notification when the total equals the limit")
		}
	})

	t.Run("income does not touch the aggregate", func(t *testing.T) {
		f := newLedgerFixture()
		f.setLimit(5000)

		_, err := f.createUseCase().Execute(context.Background(), CreateTransactionInput{
			UserID:       f.user.ID,
			Amount:       10000,
			Description:  "Salary",
			Type:         "INCOME",
			CategoryName: "Pets",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		limit, _ := f.limitRepo.FindByUser(context.Background(), f.user.ID)
		if limit.TotalExpenses != 0 {
			t.Errorf("expected running total 0, got %d", limit.TotalExpenses)
		}
		if len(f.limitRepo.deltas) != 0 {
			t.Error("expected no aggregate delta for income")
		}
	})

	t.Run("no active limit means tracking is a no-op", func(t *testing.T) {
		f := newLedgerFixture()

		createExpense(t, f, 9999)
		if len(f.notifier.sent) != 0 {
			t.Error("expected no notification without an active limit")
		}
	})
}
