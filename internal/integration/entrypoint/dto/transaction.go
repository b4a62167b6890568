// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-ledger/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount is an integer number of cents.
type CreateTransactionRequest struct {
	Category    string `json:"category" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ChangeCategoryRequest represents the request body for reassigning a
// transaction to another category.
type ChangeCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	ExpenseTotal string `json:"expense_total"`
	IncomeTotal  string `json:"income_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse     `json:"transactions"`
	Totals       TransactionTotalsResponse `json:"totals"`
}

// ToTransactionResponse converts a TransactionView to a TransactionResponse DTO.
func ToTransactionResponse(view transaction.TransactionView) TransactionResponse {
	return TransactionResponse{
		ID:          view.ID.String(),
		User:        view.User,
		Category:    view.Category,
		Type:        view.Type,
		Amount:      FormatCents(view.Amount),
		AmountCents: view.Amount,
		Description: view.Description,
		Date:        view.Date,
	}
}

// ToTransactionListResponse converts a TransactionListView to a TransactionListResponse DTO.
func ToTransactionListResponse(view transaction.TransactionListView) TransactionListResponse {
	response := TransactionListResponse{
		Transactions: make([]TransactionResponse, len(view.Transactions)),
		Totals: TransactionTotalsResponse{
			ExpenseTotal: FormatCents(view.TotalExpenses),
			IncomeTotal:  FormatCents(view.TotalIncomes),
		},
	}
	for i, txn := range view.Transactions {
		response.Transactions[i] = ToTransactionResponse(txn)
	}
	return response
}
