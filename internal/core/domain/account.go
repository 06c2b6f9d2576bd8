package domain

// StatementType defines which financial statement an account appears on.
type StatementType string

const (
	StatementTypeProfitLoss StatementType = "PROFIT_LOSS"
	StatementTypeBalance    StatementType = "BALANCE"
)

// DebitType is the natural side of an account on its statement.
// For balance accounts: debit=asset, credit=liability/equity.
// For profit/loss accounts it names the column the account's result usually
// lands in: revenue in the debit column, cost in the credit column.
type DebitType string

const (
	Debit  DebitType = "DEBIT"
	Credit DebitType = "CREDIT"
)

// Synthetic accounts created on demand by the report engines.
// Keyed by name within the chart, so repeated report runs reuse them.
const (
	EquityAccountName = "Equity"
	EquityAccountCode = "3000"

	ProfitAccountName = "Profit"
	ProfitAccountCode = "5999"

	LossAccountName = "Loss"
	LossAccountCode = "4999"
)

// ChartOfAccounts is the namespace that accounts and ledgers belong to.
// The application currently assumes exactly one chart exists.
type ChartOfAccounts struct {
	ChartID string `json:"chartID"`
	Name    string `json:"name"`
	AuditFields
}

// Account is a single ledger account within a chart.
// Code is unique within the chart and sorts lexically; it may carry leading
// zeros, which is why it is a string and not an integer.
type Account struct {
	AccountID     string        `json:"accountID"`
	ChartID       string        `json:"chartID"`
	Code          string        `json:"code"`
	Name          string        `json:"name"` // Not unique, e.g. company tax appears on both statements
	StatementType StatementType `json:"statementType"`
	DebitType     DebitType     `json:"debitType"`
	ContactID     string        `json:"contactID"` // Optional linked contact, used for debtor/creditor accounts
	AuditFields
}

// IsAssetSide reports whether a positive net position of a balance account
// belongs in the debit (asset) column.
func (a Account) IsAssetSide() bool {
	return a.StatementType == StatementTypeBalance && a.DebitType == Debit
}
