// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

func TestTransactionRepository_InsertAndFindByID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	category := seedCategory(t, db, user.ID, "PETS")
	transaction := seedTransaction(t, db, user.ID, category.ID, 2500, "Dog food", time.Now().UTC())

	found, err := repo.FindByID(ctx, transaction.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if found.Amount != 2500 {
		t.Errorf("expected amount 2500, got %d", found.Amount)
	}
	if found.Description != "Dog food" {
		t.Errorf("expected description %q, got %q", "Dog food", found.Description)
	}
	if found.CategoryID != category.ID {
		t.Errorf("expected category %s, got %s", category.ID, found.CategoryID)
	}

	_, err = repo.FindByID(ctx, uuid.New())
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound for unknown id, got %v", err)
	}
}

func TestTransactionRepository_UpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("repoints the transaction at the new category", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTransactionRepository(db)

		user := seedUser(t, db, "Alice", "alice@example.com")
		pets := seedCategory(t, db, user.ID, "PETS")
		travel := seedCategory(t, db, user.ID, "TRAVEL")
		transaction := seedTransaction(t, db, user.ID, pets.ID, 2500, "Dog food", time.Now().UTC())

		updated, err := repo.UpdateCategory(ctx, transaction.ID, travel.ID)
		if err != nil {
			t.Fatalf("UpdateCategory returned error: %v", err)
		}
		if updated.CategoryID != travel.ID {
			t.Errorf("expected category %s, got %s", travel.ID, updated.CategoryID)
		}
		if updated.Amount != 2500 {
			t.Errorf("expected amount untouched at 2500, got %d", updated.Amount)
		}
	})

	t.Run("returns not found for an unknown transaction", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTransactionRepository(db)

		_, err := repo.UpdateCategory(ctx, uuid.New(), uuid.New())
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransactionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	category := seedCategory(t, db, user.ID, "PETS")
	transaction := seedTransaction(t, db, user.ID, category.ID, 2500, "Dog food", time.Now().UTC())

	deleted, err := repo.Delete(ctx, transaction.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != transaction.ID {
		t.Errorf("expected deleted record %s, got %s", transaction.ID, deleted.ID)
	}
	if deleted.Amount != 2500 {
		t.Errorf("expected deleted record to carry amount 2500, got %d", deleted.Amount)
	}

	_, err = repo.FindByID(ctx, transaction.ID)
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound after delete, got %v", err)
	}

	_, err = repo.Delete(ctx, transaction.ID)
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound on second delete, got %v", err)
	}
}

func TestTransactionRepository_FindByUserAndDateRange(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")
	category := seedCategory(t, db, user.ID, "PETS")
	otherCategory := seedCategory(t, db, other.ID, "PETS")

	base := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	oldest := seedTransaction(t, db, user.ID, category.ID, 1000, "Oldest", base.AddDate(0, 0, -10))
	middle := seedTransaction(t, db, user.ID, category.ID, 2000, "Middle", base.AddDate(0, 0, -5))
	newest := seedTransaction(t, db, user.ID, category.ID, 3000, "Newest", base)
	seedTransaction(t, db, user.ID, category.ID, 4000, "Outside", base.AddDate(0, 0, -40))
	seedTransaction(t, db, other.ID, otherCategory.ID, 5000, "Foreign", base)

	start := base.AddDate(0, 0, -15)
	results, err := repo.FindByUserAndDateRange(ctx, user.ID, start, base)
	if err != nil {
		t.Fatalf("FindByUserAndDateRange returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(results))
	}
	if results[0].ID != newest.ID || results[1].ID != middle.ID || results[2].ID != oldest.ID {
		t.Errorf("expected newest-first ordering, got %q, %q, %q",
			results[0].Description, results[1].Description, results[2].Description)
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		results, err := repo.FindByUserAndDateRange(ctx, user.ID, oldest.Date, oldest.Date)
		if err != nil {
			t.Fatalf("FindByUserAndDateRange returned error: %v", err)
		}
		if len(results) != 1 || results[0].ID != oldest.ID {
			t.Errorf("expected exactly the boundary transaction, got %d results", len(results))
		}
	})
}

func TestTransactionRepository_FindByUserAndCategory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	pets := seedCategory(t, db, user.ID, "PETS")
	travel := seedCategory(t, db, user.ID, "TRAVEL")

	now := time.Now().UTC()
	seedTransaction(t, db, user.ID, pets.ID, 2500, "Dog food", now.AddDate(0, 0, -1))
	seedTransaction(t, db, user.ID, pets.ID, 1500, "Vet visit", now)
	seedTransaction(t, db, user.ID, travel.ID, 9000, "Flight", now)

	results, err := repo.FindByUserAndCategory(ctx, user.ID, pets.ID)
	if err != nil {
		t.Fatalf("FindByUserAndCategory returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(results))
	}
	if results[0].Description != "Vet visit" {
		t.Errorf("expected newest transaction first, got %q", results[0].Description)
	}
}

func TestTransactionRepository_FindByUserAndDescription(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")
	category := seedCategory(t, db, user.ID, "PETS")
	otherCategory := seedCategory(t, db, other.ID, "PETS")

	now := time.Now().UTC()
	seedTransaction(t, db, user.ID, category.ID, 2500, "Dog Food Deluxe", now)
	seedTransaction(t, db, user.ID, category.ID, 1200, "Cat food", now.AddDate(0, 0, -1))
	seedTransaction(t, db, user.ID, category.ID, 9000, "Flight tickets", now)
	seedTransaction(t, db, other.ID, otherCategory.ID, 3000, "Dog food too", now)

	results, err := repo.FindByUserAndDescription(ctx, user.ID, "dog FOOD")
	if err != nil {
		t.Fatalf("FindByUserAndDescription returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].Description != "Dog Food Deluxe" {
		t.Errorf("expected case-insensitive match, got %q", results[0].Description)
	}

	results, err = repo.FindByUserAndDescription(ctx, user.ID, "food")
	if err != nil {
		t.Fatalf("FindByUserAndDescription returned error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 matches scoped to the owner, got %d", len(results))
	}
}

func TestTransactionRepository_CountByCategory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	pets := seedCategory(t, db, user.ID, "PETS")
	travel := seedCategory(t, db, user.ID, "TRAVEL")

	now := time.Now().UTC()
	seedTransaction(t, db, user.ID, pets.ID, 2500, "Dog food", now)
	seedTransaction(t, db, user.ID, pets.ID, 1500, "Vet visit", now)

	count, err := repo.CountByCategory(ctx, pets.ID)
	if err != nil {
		t.Fatalf("CountByCategory returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	count, err = repo.CountByCategory(ctx, travel.ID)
	if err != nil {
		t.Fatalf("CountByCategory returned error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0 for unused category, got %d", count)
	}
}
