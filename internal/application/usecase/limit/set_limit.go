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

// SetLimitInput represents the input for enabling expense tracking.
type SetLimitInput struct {
	UserID      uuid.UUID
	LimitAmount int64
}

// SetLimitOutput represents the output of enabling expense tracking.
type SetLimitOutput struct {
	Limit *entity.MonthlyLimit
}

// SetLimitUseCase handles the opt-in creation of a monthly spending limit.
type SetLimitUseCase struct {
	limitRepo adapter.MonthlyLimitRepository
}

// NewSetLimitUseCase creates a new SetLimitUseCase instance.
func NewSetLimitUseCase(limitRepo adapter.MonthlyLimitRepository) *SetLimitUseCase {
	return &SetLimitUseCase{
		limitRepo: limitRepo,
	}
}

// Execute creates the user's monthly limit with a zeroed running total.
// A user holds at most one active limit; a second set is rejected rather
// than silently replaced.
func (uc *SetLimitUseCase) Execute(ctx context.Context, input SetLimitInput) (*SetLimitOutput, error) {
	if input.LimitAmount <= 0 {
		return nil, domainerror.NewLimitError(
			domainerror.ErrCodeInvalidLimitAmount,
			"limit amount must be a positive integer number of cents",
			domainerror.ErrInvalidLimitAmount,
		)
	}

	existing, err := uc.limitRepo.FindByUser(ctx, input.UserID)
	if err != nil && !errors.Is(err, domainerror.ErrLimitNotFound) {
		return nil, fmt.Errorf("failed to check existing limit: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewLimitError(
			domainerror.ErrCodeLimitAlreadySet,
			"a monthly limit is already set for this user",
			domainerror.ErrLimitAlreadySet,
		)
	}

	limit := entity.NewMonthlyLimit(input.UserID, input.LimitAmount)

	if err := uc.limitRepo.Create(ctx, limit); err != nil {
		return nil, fmt.Errorf("failed to create monthly limit: %w", err)
	}

	slog.Info("Monthly limit set",
		"limitId", limit.ID,
		"userId", input.UserID,
		"limitAmount", input.LimitAmount,
	)

	return &SetLimitOutput{
		Limit: limit,
	}, nil
}
