package dto

import (
	"time"

	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Exactly one debit account and one credit account; the amount is positive.
type CreateTransactionRequest struct {
	Date            time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Description     string          `json:"description" binding:"required,max=128"`
	InvoiceNumber   string          `json:"invoiceNumber" binding:"max=32"`
	ContactID       string          `json:"contactID"` // Optional; defaults from the accounts' linked contacts
	DebitAccountID  string          `json:"debitAccountID" binding:"required"`
	CreditAccountID string          `json:"creditAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateTransactionRequest defines the fields that may be changed on a
// transaction. Pointers distinguish "not provided" from zero values.
type UpdateTransactionRequest struct {
	Date          *time.Time       `json:"date" time_format:"2006-01-02"`
	Description   *string          `json:"description"`
	InvoiceNumber *string          `json:"invoiceNumber"`
	ContactID     *string          `json:"contactID"`
	Amount        *decimal.Decimal `json:"amount"`
}

// TransactionResponse mirrors domain.Transaction for API output.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	LedgerID        string          `json:"ledgerID"`
	Date            string          `json:"date"`
	Description     string          `json:"description"`
	InvoiceNumber   string          `json:"invoiceNumber,omitempty"`
	ContactID       string          `json:"contactID,omitempty"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its API
// representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		LedgerID:        t.LedgerID,
		Date:            t.Date.Format("2006-01-02"),
		Description:     t.Description,
		InvoiceNumber:   t.InvoiceNumber,
		ContactID:       t.ContactID,
		DebitAccountID:  t.DebitAccountID,
		CreditAccountID: t.CreditAccountID,
		Amount:          t.Amount,
		CreatedAt:       t.CreatedAt,
		LastUpdatedAt:   t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Year      int    `form:"year"`
	AccountID string `form:"accountID"`
}
