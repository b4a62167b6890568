// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyLimit is the per-user spending aggregate for one calendar month:
// a configured limit amount plus a running total of all expense amounts
// recorded in that period. The total is maintained incrementally by the
// ledger, never recomputed on read.
type MonthlyLimit struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Year          int
	Month         time.Month
	LimitAmount   int64
	TotalExpenses int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewMonthlyLimit creates a limit for the current calendar month with a
// zero running total.
func NewMonthlyLimit(userID uuid.UUID, limitAmount int64) *MonthlyLimit {
	now := time.Now().UTC()

	return &MonthlyLimit{
		ID:            uuid.New(),
		UserID:        userID,
		Year:          now.Year(),
		Month:         now.Month(),
		LimitAmount:   limitAmount,
		TotalExpenses: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsOverLimit reports whether the running total has crossed the configured
// limit. The comparison is strict: a total exactly equal to the limit is
// not over it.
func (l *MonthlyLimit) IsOverLimit() bool {
	return l.TotalExpenses > l.LimitAmount
}
