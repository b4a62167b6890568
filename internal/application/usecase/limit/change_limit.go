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

// ChangeLimitInput represents the input for changing a limit amount.
type ChangeLimitInput struct {
	UserID      uuid.UUID
	LimitID     uuid.UUID
	LimitAmount int64
}

// ChangeLimitOutput represents the output of changing a limit amount.
type ChangeLimitOutput struct {
	Limit *entity.MonthlyLimit
}

// ChangeLimitUseCase handles updates to the configured limit amount.
type ChangeLimitUseCase struct {
	limitRepo adapter.MonthlyLimitRepository
}

// NewChangeLimitUseCase creates a new ChangeLimitUseCase instance.
func NewChangeLimitUseCase(limitRepo adapter.MonthlyLimitRepository) *ChangeLimitUseCase {
	return &ChangeLimitUseCase{
		limitRepo: limitRepo,
	}
}

// Execute changes the configured limit amount. The running expense total is
// left untouched so an already-over user stays over after raising the limit
// only if their spending still exceeds it.
func (uc *ChangeLimitUseCase) Execute(ctx context.Context, input ChangeLimitInput) (*ChangeLimitOutput, error) {
	if input.LimitAmount <= 0 {
		return nil, domainerror.NewLimitError(
			domainerror.ErrCodeInvalidLimitAmount,
			"limit amount must be a positive integer number of cents",
			domainerror.ErrInvalidLimitAmount,
		)
	}

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
			"user is not authorized to modify this limit",
			domainerror.ErrNotAuthorizedToModifyLimit,
		)
	}

	updated, err := uc.limitRepo.UpdateLimitAmount(ctx, input.LimitID, input.LimitAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to update limit amount: %w", err)
	}

	slog.Info("Monthly limit changed",
		"limitId", input.LimitID,
		"userId", input.UserID,
		"limitAmount", input.LimitAmount,
	)

	return &ChangeLimitOutput{
		Limit: updated,
	}, nil
}
