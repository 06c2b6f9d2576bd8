package dto

import (
	"time"

	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
)

// BalanceItemResponse is one line on a balance sheet column.
type BalanceItemResponse struct {
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Value       string `json:"value"`
}

// BalanceSheetResponse is the balance sheet as of a date.
type BalanceSheetResponse struct {
	AsOf        string                `json:"asOf"`
	DebitItems  []BalanceItemResponse `json:"debitItems"`
	CreditItems []BalanceItemResponse `json:"creditItems"`
	DebitTotal  string                `json:"debitTotal"`
	CreditTotal string                `json:"creditTotal"`
}

// ToBalanceSheetResponse converts a domain.Balance to its API
// representation.
func ToBalanceSheetResponse(b *domain.Balance, asOf time.Time) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:        asOf.Format("2006-01-02"),
		DebitItems:  toBalanceItemResponses(b.DebitItems),
		CreditItems: toBalanceItemResponses(b.CreditItems),
		DebitTotal:  b.DebitSum().StringFixed(2),
		CreditTotal: b.CreditSum().StringFixed(2),
	}
}

func toBalanceItemResponses(items []domain.BalanceItem) []BalanceItemResponse {
	res := make([]BalanceItemResponse, 0, len(items))
	for _, item := range items {
		if item.Account == nil {
			continue
		}
		res = append(res, BalanceItemResponse{
			AccountCode: item.Account.Code,
			AccountName: item.Account.Name,
			Value:       item.ValueStr(),
		})
	}
	return res
}

// ProfitLossLineResponse is one line on the profit and loss statement.
// Exactly one of Debit and Credit is non-empty.
type ProfitLossLineResponse struct {
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Debit       string `json:"debit,omitempty"`
	Credit      string `json:"credit,omitempty"`
}

// ProfitLossResponse is the profit and loss statement of one fiscal year.
type ProfitLossResponse struct {
	Year  int                     `json:"year"`
	Lines []ProfitLossLineResponse `json:"lines"`
	Total *ProfitLossLineResponse `json:"total,omitempty"`
}

// ToProfitLossResponse converts a domain.ProfitLoss to its API
// representation.
func ToProfitLossResponse(p *domain.ProfitLoss) ProfitLossResponse {
	res := ProfitLossResponse{
		Year:  p.Year,
		Lines: make([]ProfitLossLineResponse, 0, len(p.Lines)),
	}
	for _, line := range p.Lines {
		res.Lines = append(res.Lines, toProfitLossLineResponse(line))
	}
	if p.Total != nil {
		total := toProfitLossLineResponse(*p.Total)
		res.Total = &total
	}
	return res
}

func toProfitLossLineResponse(line domain.ProfitLossLine) ProfitLossLineResponse {
	res := ProfitLossLineResponse{
		AccountCode: line.Account.Code,
		AccountName: line.Account.Name,
	}
	if line.Debit.Valid {
		res.Debit = line.Debit.Decimal.StringFixed(2)
	}
	if line.Credit.Valid {
		res.Credit = line.Credit.Decimal.StringFixed(2)
	}
	return res
}
