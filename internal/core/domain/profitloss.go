package domain

import (
	"fmt"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ProfitLossLine is one account's net result for a fiscal year. Exactly one
// of Debit and Credit is set: Debit for a net revenue-side result, Credit
// for a net cost-side result.
type ProfitLossLine struct {
	Account *Account            `json:"account"`
	Debit   decimal.NullDecimal `json:"debit"`
	Credit  decimal.NullDecimal `json:"credit"`
}

// NewProfitLossLine builds a line, rounding the present side to 2 decimal
// places with banker's rounding. A line without an account, or with both
// sides absent, is rejected.
func NewProfitLossLine(account *Account, debit, credit *decimal.Decimal) (ProfitLossLine, error) {
	if account == nil {
		return ProfitLossLine{}, fmt.Errorf("%w: profit/loss line requires an account", apperrors.ErrValidation)
	}
	if debit == nil && credit == nil {
		return ProfitLossLine{}, fmt.Errorf("%w: profit/loss line for account %s has neither a debit nor a credit value", apperrors.ErrValidation, account.Name)
	}

	line := ProfitLossLine{Account: account}
	if debit != nil {
		line.Debit = decimal.NewNullDecimal(debit.RoundBank(2))
	}
	if credit != nil {
		line.Credit = decimal.NewNullDecimal(credit.RoundBank(2))
	}
	return line, nil
}

// Equal compares account identity and both sides.
func (l ProfitLossLine) Equal(other ProfitLossLine) bool {
	if (l.Account == nil) != (other.Account == nil) {
		return false
	}
	if l.Account != nil && l.Account.AccountID != other.Account.AccountID {
		return false
	}
	return nullDecimalEqual(l.Debit, other.Debit) && nullDecimalEqual(l.Credit, other.Credit)
}

func nullDecimalEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

// ProfitLoss is the profit and loss statement of one fiscal year.
// Total is the synthesized Profit or Loss line; it is nil when revenues and
// losses cancel out exactly, in which case the report has no total line.
type ProfitLoss struct {
	Year  int              `json:"year"`
	Lines []ProfitLossLine `json:"lines"`
	Total *ProfitLossLine  `json:"total,omitempty"`
}

// DebitSum returns the sum of all debit-side line values including the
// total line.
func (p *ProfitLoss) DebitSum() decimal.Decimal {
	return p.sumSide(func(l ProfitLossLine) decimal.NullDecimal { return l.Debit })
}

// CreditSum returns the sum of all credit-side line values including the
// total line.
func (p *ProfitLoss) CreditSum() decimal.Decimal {
	return p.sumSide(func(l ProfitLossLine) decimal.NullDecimal { return l.Credit })
}

func (p *ProfitLoss) sumSide(side func(ProfitLossLine) decimal.NullDecimal) decimal.Decimal {
	total := decimal.Zero
	for _, line := range p.Lines {
		if v := side(line); v.Valid {
			total = total.Add(v.Decimal)
		}
	}
	if p.Total != nil {
		if v := side(*p.Total); v.Valid {
			total = total.Add(v.Decimal)
		}
	}
	return total
}
