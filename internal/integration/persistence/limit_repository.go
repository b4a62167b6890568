// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
)

// monthlyLimitRepository implements the adapter.MonthlyLimitRepository interface.
type monthlyLimitRepository struct {
	db *gorm.DB
}

// NewMonthlyLimitRepository creates a new monthly limit repository instance.
func NewMonthlyLimitRepository(db *gorm.DB) adapter.MonthlyLimitRepository {
	return &monthlyLimitRepository{
		db: db,
	}
}

// Create creates a new monthly limit in the database.
func (r *monthlyLimitRepository) Create(ctx context.Context, limit *entity.MonthlyLimit) error {
	limitModel := model.MonthlyLimitFromEntity(limit)
	result := r.db.WithContext(ctx).Create(limitModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a monthly limit by its ID.
func (r *monthlyLimitRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyLimit, error) {
	var limitModel model.MonthlyLimitModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&limitModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLimitNotFound
		}
		return nil, result.Error
	}
	return limitModel.ToEntity(), nil
}

// FindByUser retrieves the active monthly limit of a user.
func (r *monthlyLimitRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.MonthlyLimit, error) {
	var limitModel model.MonthlyLimitModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&limitModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLimitNotFound
		}
		return nil, result.Error
	}
	return limitModel.ToEntity(), nil
}

// UpdateLimitAmount changes the configured limit amount only; the running
// total is untouched.
func (r *monthlyLimitRepository) UpdateLimitAmount(ctx context.Context, id uuid.UUID, limitAmount int64) (*entity.MonthlyLimit, error) {
	result := r.db.WithContext(ctx).
		Model(&model.MonthlyLimitModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"limit_amount": limitAmount,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerror.ErrLimitNotFound
	}
	return r.FindByID(ctx, id)
}

// ApplyDelta adds the signed amount to the user's running expense total as a
// single SQL increment. Concurrent writers all land on the same row without
// a read-modify-write window. When the user has no limit row the update
// touches nothing and (nil, nil) is returned: tracking is opt-in.
func (r *monthlyLimitRepository) ApplyDelta(ctx context.Context, userID uuid.UUID, delta int64) (*entity.MonthlyLimit, error) {
	result := r.db.WithContext(ctx).
		Model(&model.MonthlyLimitModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_expenses": gorm.Expr("total_expenses + ?", delta),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	limit, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return limit, nil
}

// Delete removes a monthly limit and returns the deleted record.
func (r *monthlyLimitRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.MonthlyLimit, error) {
	limit, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&model.MonthlyLimitModel{}, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	return limit, nil
}
