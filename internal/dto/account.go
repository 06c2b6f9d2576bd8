package dto

import (
	"time"

	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code          string               `json:"code" binding:"required,max=4"`
	Name          string               `json:"name" binding:"required,max=32"`
	StatementType domain.StatementType `json:"statementType" binding:"required,oneof=PROFIT_LOSS BALANCE"`
	DebitType     domain.DebitType     `json:"debitType" binding:"required,oneof=DEBIT CREDIT"`
	ContactID     string               `json:"contactID"` // Optional linked contact
}

// UpdateAccountRequest defines the fields that may be changed on an account.
// Pointers distinguish "not provided" from zero values.
type UpdateAccountRequest struct {
	Name      *string `json:"name"`
	ContactID *string `json:"contactID"`
}

// AccountResponse mirrors domain.Account for API output.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	Code          string               `json:"code"`
	Name          string               `json:"name"`
	StatementType domain.StatementType `json:"statementType"`
	DebitType     domain.DebitType     `json:"debitType"`
	ContactID     string               `json:"contactID,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its API representation.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		StatementType: acc.StatementType,
		DebitType:     acc.DebitType,
		ContactID:     acc.ContactID,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of accounts.
func ToListAccountsResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	StatementType string `form:"statementType" binding:"omitempty,oneof=PROFIT_LOSS BALANCE"`
}
