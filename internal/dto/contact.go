package dto

import (
	"time"

	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
)

// CreateContactRequest defines the data needed to create a contact.
type CreateContactRequest struct {
	Name        string `json:"name" binding:"required,max=64"`
	BankAccount string `json:"bankAccount" binding:"max=64"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// ContactResponse mirrors domain.Contact for API output.
type ContactResponse struct {
	ContactID     string    `json:"contactID"`
	Name          string    `json:"name"`
	BankAccount   string    `json:"bankAccount,omitempty"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToContactResponse converts a domain.Contact to its API representation.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:     c.ContactID,
		Name:          c.Name,
		BankAccount:   c.BankAccount,
		Email:         c.Email,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListContactsResponse converts a slice of contacts.
func ToListContactsResponse(contacts []domain.Contact) []ContactResponse {
	res := make([]ContactResponse, len(contacts))
	for i := range contacts {
		res[i] = ToContactResponse(&contacts[i])
	}
	return res
}
