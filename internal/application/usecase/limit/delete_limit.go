// Package limit contains monthly spending limit use cases.
package limit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// DeleteLimitInput represents the input for disabling expense tracking.
type DeleteLimitInput struct {
	UserID  uuid.UUID
	LimitID uuid.UUID
}

// DeleteLimitOutput represents the output of disabling expense tracking.
type DeleteLimitOutput struct {
	Limit *entity.MonthlyLimit
}

// DeleteLimitUseCase handles removal of a monthly spending limit. Once
// removed, expense aggregation for the user becomes a no-op.
type DeleteLimitUseCase struct {
	limitRepo adapter.MonthlyLimitRepository
}

// NewDeleteLimitUseCase creates a new DeleteLimitUseCase instance.
func NewDeleteLimitUseCase(limitRepo adapter.MonthlyLimitRepository) *DeleteLimitUseCase {
	return &DeleteLimitUseCase{
		limitRepo: limitRepo,
	}
}

// Execute performs the limit deletion and returns the removed record.
func (uc *DeleteLimitUseCase) Execute(ctx context.Context, input DeleteLimitInput) (*DeleteLimitOutput, error) {
	limit, err := uc.limitRepo.FindByID(ctx, input.LimitID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLimitNotFound) {
			return nil, domainerror.NewLimitError(
				domainerror.ErrCodeLimitNotFound,
				"monthly limit not found",
				domainerror.ErrLimitNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find monthly limit: %w", err)
	}

	if limit.UserID != input.UserID {
		return nil, domainerror.NewLimitError(
			domainerror.ErrCodeNotAuthorizedLimit,
			"user is not authorized to delete this limit",
			domainerror.ErrNotAuthorizedToModifyLimit,
		)
	}

	deleted, err := uc.limitRepo.Delete(ctx, input.LimitID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete monthly limit: %w", err)
	}

	slog.Info("Monthly limit deleted",
		"limitId", input.LimitID,
		"userId", input.UserID,
	)

	return &DeleteLimitOutput{
		Limit: deleted,
	}, nil
}
