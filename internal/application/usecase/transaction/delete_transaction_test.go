// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

func TestDeleteTransaction_NotFound(t *testing.T) {
	f := newLedgerFixture()
	uc := NewDeleteTransactionUseCase(f.transactionRepo, f.limitRepo, f.cache)

	_, err := uc.Execute(context.Background(), DeleteTransactionInput{
		TransactionID: uuid.New(),
		UserID:        f.user.ID,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := transactionErrorCode(t, err); code != domainerror.ErrCodeTransactionNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeTransactionNotFound, code)
	}
}

func TestDeleteTransaction_CrossOwnerForbidden(t *testing.T) {
	f := newLedgerFixture()
	uc := NewDeleteTransactionUseCase(f.transactionRepo, f.limitRepo, f.cache)

	txn := f.seedTransaction(entity.TransactionTypeExpense, 2500, "Dog food")

	intruder := uuid.New()
	_, err := uc.Execute(context.Background(), DeleteTransactionInput{
		TransactionID: txn.ID,
		UserID:        intruder,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := transactionErrorCode(t, err); code != domainerror.ErrCodeNotAuthorizedTransaction {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeNotAuthorizedTransaction, code)
	}

	// The record must survive the rejected attempt.
	if _, err := f.transactionRepo.FindByID(context.Background(), txn.ID); err != nil {
		t.Error("expected the transaction to still exist")
	}
}

func TestDeleteTransaction_RollsAggregateBack(t *testing.T) {
	f := newLedgerFixture()
	limit := f.setLimit(5000)
	limit.TotalExpenses = 5500
	f.limitRepo.byUser[f.user.ID].TotalExpenses = 5500

	txn := f.seedTransaction(entity.TransactionTypeExpense, 2500, "Dog food")

	uc := NewDeleteTransactionUseCase(f.transactionRepo, f.limitRepo, f.cache)
	out, err := uc.Execute(context.Background(), DeleteTransactionInput{
		TransactionID: txn.ID,
		UserID:        f.user.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Transaction.ID != txn.ID {
		t.Error("expected the deleted record to be returned")
	}

	updated, _ := f.limitRepo.FindByUser(context.Background(), f.user.ID)
	if updated.TotalExpenses != 3000 {
		t.Errorf("expected running total 3000 after rollback, got %d", updated.TotalExpenses)
	}
}

func TestDeleteTransaction_IncomeLeavesAggregateAlone(t *testing.T) {
	f := newLedgerFixture()
	f.setLimit(5000)
	txn := f.seedTransaction(entity.TransactionTypeIncome, 10000, "Salary")

	uc := NewDeleteTransactionUseCase(f.transactionRepo, f.limitRepo, f.cache)
	if _, err := uc.Execute(context.Background(), DeleteTransactionInput{
		TransactionID: txn.ID,
		UserID:        f.user.ID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.limitRepo.deltas) != 0 {
		t.Error("expected no aggregate delta when deleting income")
	}
}

func TestDeleteTransaction_InvalidatesViews(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	txn := f.seedTransaction(entity.TransactionTypeExpense, 2500, "Dog food")

	staleKeys := []adapter.ViewKey{
		adapter.SingleViewKey(f.user.ID, txn.ID),
		adapter.TimeRangeViewKey(f.user.ID, string(TimeRangeDay)),
		adapter.TimeRangeViewKey(f.user.ID, string(TimeRangeWeek)),
		adapter.TimeRangeViewKey(f.user.ID, string(TimeRangeMonth)),
		adapter.CategoryViewKey(f.user.ID, txn.CategoryID),
	}
	for _, key := range staleKeys {
		_ = f.cache.Put(ctx, key, []byte(`{}`), 0)
	}

	uc := NewDeleteTransactionUseCase(f.transactionRepo, f.limitRepo, f.cache)
	if _, err := uc.Execute(ctx, DeleteTransactionInput{
		TransactionID: txn.ID,
		UserID:        f.user.ID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range staleKeys {
		if f.cache.has(key) {
			t.Errorf("expected key %s to be invalidated", key)
		}
	}
}

func TestDeleteTransaction_NoLimitIsFine(t *testing.T) {
	f := newLedgerFixture()
	txn := f.seedTransaction(entity.TransactionTypeExpense, 2500, "Dog food")

	uc := NewDeleteTransactionUseCase(f.transactionRepo, f.limitRepo, f.cache)
	if _, err := uc.Execute(context.Background(), DeleteTransactionInput{
		TransactionID: txn.ID,
		UserID:        f.user.ID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
