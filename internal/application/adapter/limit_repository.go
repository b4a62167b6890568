// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// MonthlyLimitRepository defines the interface for monthly limit persistence
// operations. A user has at most one active limit row at a time.
type MonthlyLimitRepository interface {
	// Create creates a new monthly limit in the database.
	Create(ctx context.Context, limit *entity.MonthlyLimit) error

	// FindByID retrieves a monthly limit by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyLimit, error)

	// FindByUser retrieves the active monthly limit of a user.
	// Returns domain ErrLimitNotFound when absent.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.MonthlyLimit, error)

	// UpdateLimitAmount changes the configured limit amount only; the
	// running total is untouched.
	UpdateLimitAmount(ctx context.Context, id uuid.UUID, limitAmount int64) (*entity.MonthlyLimit, error)

	// ApplyDelta atomically adds the signed amount to the user's running
	// expense total as a single store-side increment, never a
	// read-modify-write in application code. When the user has no active
	// limit it returns (nil, nil): aggregate tracking is opt-in.
	ApplyDelta(ctx context.Context, userID uuid.UUID, delta int64) (*entity.MonthlyLimit, error)

	// Delete removes a monthly limit and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*entity.MonthlyLimit, error)
}
