package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger groups the transactions of one fiscal year within a chart.
// At most one ledger exists per (chart, year); it is created lazily on the
// first transaction of that year.
type Ledger struct {
	LedgerID string `json:"ledgerID"`
	ChartID  string `json:"chartID"`
	Year     int    `json:"year"`
	AuditFields
}

// Transaction is a single bookkeeping entry with exactly one debit leg and
// one credit leg. Amount is always positive; the debit and credit accounts
// must differ.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	LedgerID        string          `json:"ledgerID"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	InvoiceNumber   string          `json:"invoiceNumber"` // Invoice number from the invoicee, optional
	ContactID       string          `json:"contactID"`     // Optional; defaults to the debit or credit account's contact
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	AuditFields
}

// Equal compares the bookkeeping content of two transactions, ignoring
// identity and audit fields. Used by the importer to detect duplicates.
func (t Transaction) Equal(other Transaction) bool {
	return t.Date.Equal(other.Date) &&
		t.Description == other.Description &&
		t.InvoiceNumber == other.InvoiceNumber &&
		t.ContactID == other.ContactID &&
		t.DebitAccountID == other.DebitAccountID &&
		t.CreditAccountID == other.CreditAccountID &&
		t.Amount.Equal(other.Amount)
}
