package domain

// Contact is a counterparty, linked from debtor/creditor accounts and from
// individual transactions.
type Contact struct {
	ContactID   string `json:"contactID"`
	Name        string `json:"name"`
	BankAccount string `json:"bankAccount"` // Bank account number of the contact, optional
	Email       string `json:"email"`       // Optional
	AuditFields
}
