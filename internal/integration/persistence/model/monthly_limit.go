// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// MonthlyLimitModel represents the monthly_limits table in the database.
// TotalExpenses is only ever modified through store-side increments so
// concurrent writers never lose updates.
type MonthlyLimitModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Year          int       `gorm:"not null"`
	Month         int       `gorm:"not null"`
	LimitAmount   int64     `gorm:"not null"`
	TotalExpenses int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the MonthlyLimitModel.
func (MonthlyLimitModel) TableName() string {
	return "monthly_limits"
}

// ToEntity converts a MonthlyLimitModel to a domain MonthlyLimit entity.
func (m *MonthlyLimitModel) ToEntity() *entity.MonthlyLimit {
	return &entity.MonthlyLimit{
		ID:            m.ID,
		UserID:        m.UserID,
		Year:          m.Year,
		Month:         time.Month(m.Month),
		LimitAmount:   m.LimitAmount,
		TotalExpenses: m.TotalExpenses,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// MonthlyLimitFromEntity creates a MonthlyLimitModel from a domain MonthlyLimit entity.
func MonthlyLimitFromEntity(limit *entity.MonthlyLimit) *MonthlyLimitModel {
	return &MonthlyLimitModel{
		ID:            limit.ID,
		UserID:        limit.UserID,
		Year:          limit.Year,
		Month:         int(limit.Month),
		LimitAmount:   limit.LimitAmount,
		TotalExpenses: limit.TotalExpenses,
		CreatedAt:     limit.CreatedAt,
		UpdatedAt:     limit.UpdatedAt,
	}
}
