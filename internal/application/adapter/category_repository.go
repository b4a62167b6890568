// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// Name lookups always operate on the normalized (uppercased, trimmed) form.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUserAndName retrieves a category by owner and normalized name.
	// Returns domain ErrCategoryNotFound when absent.
	FindByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error)

	// FindByUser retrieves all categories of a user, oldest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsByUserAndName checks if a category with the normalized name
	// exists for the owner.
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
