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

func TestCategoryRepository_FindByUserAndName(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")
	category := seedCategory(t, db, user.ID, "PETS")
	seedCategory(t, db, other.ID, "PETS")

	found, err := repo.FindByUserAndName(ctx, user.ID, "PETS")
	if err != nil {
		t.Fatalf("FindByUserAndName returned error: %v", err)
	}
	if found.ID != category.ID {
		t.Errorf("expected the owner's category %s, got %s", category.ID, found.ID)
	}

	_, err = repo.FindByUserAndName(ctx, user.ID, "TRAVEL")
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound for unknown name, got %v", err)
	}
}

func TestCategoryRepository_ExistsByUserAndName(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	seedCategory(t, db, user.ID, "PETS")

	exists, err := repo.ExistsByUserAndName(ctx, user.ID, "PETS")
	if err != nil {
		t.Fatalf("ExistsByUserAndName returned error: %v", err)
	}
	if !exists {
		t.Error("expected existing category to be reported")
	}

	exists, err = repo.ExistsByUserAndName(ctx, uuid.New(), "PETS")
	if err != nil {
		t.Fatalf("ExistsByUserAndName returned error: %v", err)
	}
	if exists {
		t.Error("expected another owner's lookup to come back empty")
	}
}

func TestCategoryRepository_FindByUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")

	first := seedCategory(t, db, user.ID, "PETS")
	second := seedCategory(t, db, user.ID, "TRAVEL")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	if err := db.Table("categories").
		Where("id = ?", second.ID).
		Update("created_at", second.CreatedAt).Error; err != nil {
		t.Fatalf("failed to adjust created_at: %v", err)
	}
	seedCategory(t, db, other.ID, "GROCERIES")

	categories, err := repo.FindByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByUser returned error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "PETS" || categories[1].Name != "TRAVEL" {
		t.Errorf("expected oldest-first ordering, got %q then %q",
			categories[0].Name, categories[1].Name)
	}
}

func TestCategoryRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	user := seedUser(t, db, "Alice", "alice@example.com")
	category := seedCategory(t, db, user.ID, "PETS")

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	_, err := repo.FindByID(ctx, category.ID)
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}
