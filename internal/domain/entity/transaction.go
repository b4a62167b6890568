// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "EXPENSE"
	TransactionTypeIncome  TransactionType = "INCOME"
)

// ParseTransactionType normalizes a raw type string (case and surrounding
// whitespace are ignored) and reports whether it names a known type.
func ParseTransactionType(raw string) (TransactionType, bool) {
	normalized := TransactionType(strings.ToUpper(strings.TrimSpace(raw)))
	if normalized == TransactionTypeExpense || normalized == TransactionTypeIncome {
		return normalized, true
	}
	return "", false
}

const (
	// MinDescriptionLength is the minimum allowed length for transaction descriptions.
	MinDescriptionLength = 3
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
)

// Transaction represents a single ledger entry. Amount is expressed in the
// smallest currency unit and is always positive; the Type field decides
// whether it counts against or towards the owner's balance.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Type        TransactionType
	Amount      int64
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity dated now.
func NewTransaction(userID, categoryID uuid.UUID, transactionType TransactionType, amount int64, description string) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsExpense reports whether the transaction counts against the owner's
// monthly spending aggregate.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}
