// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// SetLimitRequest represents the request body for enabling expense tracking.
// Amount is an integer number of cents.
type SetLimitRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// ChangeLimitRequest represents the request body for changing a limit amount.
type ChangeLimitRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// LimitResponse represents a monthly limit in API responses.
type LimitResponse struct {
	ID            string    `json:"id"`
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	LimitAmount   string    `json:"limit_amount"`
	TotalExpenses string    `json:"total_expenses"`
	OverLimit     bool      `json:"over_limit"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToLimitResponse converts a domain MonthlyLimit entity to a LimitResponse DTO.
func ToLimitResponse(limit *entity.MonthlyLimit) LimitResponse {
	return LimitResponse{
		ID:            limit.ID.String(),
		Year:          limit.Year,
		Month:         int(limit.Month),
		LimitAmount:   FormatCents(limit.LimitAmount),
		TotalExpenses: FormatCents(limit.TotalExpenses),
		OverLimit:     limit.IsOverLimit(),
		CreatedAt:     limit.CreatedAt,
	}
}
