package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceItem is one account's net position on the balance sheet. A blank
// item (no account, no value) is used to pad the shorter column when the
// sheet is rendered side by side.
//
// Values are rounded to 2 decimal places at construction, using banker's
// rounding to match the behavior the report figures are validated against.
type BalanceItem struct {
	Account *Account            `json:"account"`
	Value   decimal.NullDecimal `json:"value"`
}

// NewBalanceItem builds an item for the given account, rounding the value.
func NewBalanceItem(account *Account, value decimal.Decimal) BalanceItem {
	return BalanceItem{
		Account: account,
		Value:   decimal.NewNullDecimal(value.RoundBank(2)),
	}
}

// AccountStr returns the account name, or "" for a blank item.
func (i BalanceItem) AccountStr() string {
	if i.Account == nil {
		return ""
	}
	return i.Account.Name
}

// ValueStr returns the value with two decimals, or "" for a blank item.
func (i BalanceItem) ValueStr() string {
	if !i.Value.Valid {
		return ""
	}
	return i.Value.Decimal.StringFixed(2)
}

// Equal compares account identity and value.
func (i BalanceItem) Equal(other BalanceItem) bool {
	if (i.Account == nil) != (other.Account == nil) {
		return false
	}
	if i.Account != nil && i.Account.AccountID != other.Account.AccountID {
		return false
	}
	if i.Value.Valid != other.Value.Valid {
		return false
	}
	return !i.Value.Valid || i.Value.Decimal.Equal(other.Value.Decimal)
}

// Balance is the balance sheet as of Date: the net position of every
// balance account with transactions up to and including that date, plus
// the synthesized Equity item that makes both sides sum to the same total.
type Balance struct {
	Date        time.Time     `json:"date"`
	DebitItems  []BalanceItem `json:"debitItems"`
	CreditItems []BalanceItem `json:"creditItems"`
}

// AccountResult nets a balance account's transaction sums onto its natural
// side: debit-type accounts yield debits minus credits, credit-type
// accounts the inverse. The result may be negative; a negative position
// stays on the account's natural side rather than moving columns.
func AccountResult(debitType DebitType, debitSum, creditSum decimal.Decimal) decimal.Decimal {
	if debitType == Debit {
		return debitSum.Sub(creditSum)
	}
	return creditSum.Sub(debitSum)
}

// DebitSum returns the sum of all debit item values.
func (b *Balance) DebitSum() decimal.Decimal {
	return sumItems(b.DebitItems)
}

// CreditSum returns the sum of all credit item values. After the Equity
// item is appended this always equals DebitSum.
func (b *Balance) CreditSum() decimal.Decimal {
	return sumItems(b.CreditItems)
}

func sumItems(items []BalanceItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Value.Valid {
			total = total.Add(item.Value.Decimal)
		}
	}
	return total
}

// Lines renders the sheet as rows of [debit account, value, credit
// account, value], padding the shorter column with blank items so both
// sides have the same number of rows.
func (b *Balance) Lines() [][]string {
	debitItems := b.DebitItems
	creditItems := b.CreditItems
	for len(creditItems) < len(debitItems) {
		creditItems = append(creditItems, BalanceItem{})
	}
	for len(debitItems) < len(creditItems) {
		debitItems = append(debitItems, BalanceItem{})
	}

	lines := make([][]string, 0, len(debitItems))
	for i := range debitItems {
		lines = append(lines, []string{
			debitItems[i].AccountStr(), debitItems[i].ValueStr(),
			creditItems[i].AccountStr(), creditItems[i].ValueStr(),
		})
	}
	return lines
}

// TotalLine is the trailing row with both grand totals.
func (b *Balance) TotalLine() []string {
	return []string{"Total", b.DebitSum().StringFixed(2), "Total", b.CreditSum().StringFixed(2)}
}
