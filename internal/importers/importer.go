// Package importers reads transactions from a spreadsheet matrix and
// records them in the ledger. The expected layout is the one produced by
// the administration's bookkeeping sheet: a header row followed by
// two-row transactions, where the first row carries the transaction
// fields and the debit or credit leg, and the following row the opposite
// leg.
package importers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
)

// Required header columns, matched case-insensitively.
const (
	columnID          = "id"
	columnDate        = "date"
	columnDescription = "description"
	columnInvoice     = "invoice number"
	columnContact     = "contact"
	columnAccountCode = "account code"
	columnDebit       = "debit"
	columnCredit      = "credit"
)

var requiredColumns = []string{
	columnID, columnDate, columnDescription, columnInvoice,
	columnContact, columnAccountCode, columnDebit, columnCredit,
}

// ImportResult summarizes one import run. Imported counts transactions
// recorded; Skipped counts transactions that already existed with
// identical content.
type ImportResult struct {
	Imported int
	Skipped  int
}

// Importer records matrix rows as ledger transactions.
type Importer struct {
	accountSvc portssvc.AccountSvc
	contactSvc portssvc.ContactSvc
	ledgerSvc  portssvc.LedgerSvc
}

// NewImporter creates a new importer.
func NewImporter(accountSvc portssvc.AccountSvc, contactSvc portssvc.ContactSvc, ledgerSvc portssvc.LedgerSvc) *Importer {
	return &Importer{accountSvc: accountSvc, contactSvc: contactSvc, ledgerSvc: ledgerSvc}
}

// ReadCSV parses delimited text into a string-celled matrix. Rows may
// have varying lengths.
func ReadCSV(r io.Reader) (domain.Matrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var matrix domain.Matrix
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		row := make(domain.Row, len(record))
		for i, field := range record {
			row[i] = domain.StringCell(field)
		}
		matrix = append(matrix, row)
	}
	return matrix, nil
}

// pendingTransaction accumulates a transaction across its two legs.
type pendingTransaction struct {
	row             int
	date            time.Time
	description     string
	invoiceNumber   string
	contactID       string
	debitAccountID  string
	creditAccountID string
	amount          decimal.Decimal
}

func (p *pendingTransaction) complete() bool {
	return p.debitAccountID != "" && p.creditAccountID != ""
}

// Import records the matrix's transactions. Each completed transaction is
// saved immediately, so when a later row fails everything recorded before
// it stays committed; the returned error then carries the failing row
// number.
func (imp *Importer) Import(ctx context.Context, matrix domain.Matrix) (ImportResult, error) {
	result := ImportResult{}
	if len(matrix) == 0 {
		return result, apperrors.NewImportError(1, "missing header row")
	}

	columns, err := headerColumns(matrix[0])
	if err != nil {
		return result, err
	}

	existing, err := imp.existingTransactions(ctx)
	if err != nil {
		return result, err
	}

	var pending *pendingTransaction
	for i, row := range matrix[1:] {
		rowNum := i + 2 // 1-based, header is row 1

		id := cellValue(row, columns[columnID])
		if id != "" {
			if pending != nil {
				return result, apperrors.NewImportError(pending.row, "transaction is missing its second leg")
			}
			pending, err = imp.startTransaction(ctx, row, columns, rowNum)
			if err != nil {
				return result, err
			}
		} else {
			if pending == nil {
				return result, apperrors.NewImportError(rowNum, "leg row without a preceding transaction row")
			}
			if err := imp.addSecondLeg(ctx, pending, row, columns, rowNum); err != nil {
				return result, err
			}
		}

		if pending != nil && pending.complete() {
			saved, err := imp.saveTransaction(ctx, pending, existing)
			if err != nil {
				return result, err
			}
			if saved {
				result.Imported++
			} else {
				result.Skipped++
			}
			pending = nil
		}
	}

	if pending != nil {
		return result, apperrors.NewImportError(pending.row, "transaction is missing its second leg")
	}
	return result, nil
}

func headerColumns(header domain.Row) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		columns[strings.ToLower(strings.TrimSpace(cell.Render()))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, apperrors.NewImportError(1, "missing column %q", name)
		}
	}
	return columns, nil
}

func cellValue(row domain.Row, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index].Render())
}

// rowLeg extracts the account and the single-sided amount of one row.
func (imp *Importer) rowLeg(ctx context.Context, row domain.Row, columns map[string]int, rowNum int) (accountID string, amount decimal.Decimal, isDebit bool, err error) {
	debitStr := cellValue(row, columns[columnDebit])
	creditStr := cellValue(row, columns[columnCredit])

	switch {
	case debitStr != "" && creditStr != "":
		return "", decimal.Zero, false, apperrors.NewImportError(rowNum, "row has both a debit and a credit amount")
	case debitStr == "" && creditStr == "":
		return "", decimal.Zero, false, apperrors.NewImportError(rowNum, "row has neither a debit nor a credit amount")
	}

	amountStr := debitStr
	isDebit = true
	if creditStr != "" {
		amountStr = creditStr
		isDebit = false
	}
	amount, parseErr := decimal.NewFromString(amountStr)
	if parseErr != nil {
		return "", decimal.Zero, false, apperrors.NewImportError(rowNum, "invalid amount %q", amountStr)
	}

	code := cellValue(row, columns[columnAccountCode])
	account, lookupErr := imp.accountSvc.GetAccountByCode(ctx, code)
	if lookupErr != nil {
		if errors.Is(lookupErr, apperrors.ErrNotFound) {
			return "", decimal.Zero, false, apperrors.NewImportError(rowNum, "unknown account code %q", code)
		}
		return "", decimal.Zero, false, lookupErr
	}
	return account.AccountID, amount, isDebit, nil
}

func (imp *Importer) startTransaction(ctx context.Context, row domain.Row, columns map[string]int, rowNum int) (*pendingTransaction, error) {
	dateStr := cellValue(row, columns[columnDate])
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, apperrors.NewImportError(rowNum, "invalid date %q", dateStr)
	}

	pending := &pendingTransaction{
		row:           rowNum,
		date:          date,
		description:   cellValue(row, columns[columnDescription]),
		invoiceNumber: cellValue(row, columns[columnInvoice]),
	}

	if contactName := cellValue(row, columns[columnContact]); contactName != "" {
		contact, err := imp.contactSvc.GetContactByName(ctx, contactName)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewImportError(rowNum, "unknown contact %q", contactName)
			}
			return nil, err
		}
		pending.contactID = contact.ContactID
	}

	accountID, amount, isDebit, err := imp.rowLeg(ctx, row, columns, rowNum)
	if err != nil {
		return nil, err
	}
	pending.amount = amount
	if isDebit {
		pending.debitAccountID = accountID
	} else {
		pending.creditAccountID = accountID
	}
	return pending, nil
}

func (imp *Importer) addSecondLeg(ctx context.Context, pending *pendingTransaction, row domain.Row, columns map[string]int, rowNum int) error {
	accountID, amount, isDebit, err := imp.rowLeg(ctx, row, columns, rowNum)
	if err != nil {
		return err
	}

	if isDebit {
		if pending.debitAccountID != "" {
			return apperrors.NewImportError(rowNum, "transaction has two debit legs")
		}
		pending.debitAccountID = accountID
	} else {
		if pending.creditAccountID != "" {
			return apperrors.NewImportError(rowNum, "transaction has two credit legs")
		}
		pending.creditAccountID = accountID
	}

	if !amount.Equal(pending.amount) {
		return apperrors.NewImportError(rowNum, "leg amount %s does not match %s", amount.String(), pending.amount.String())
	}
	return nil
}

// existingTransactions loads the already-recorded transactions so an
// import run over a previously imported sheet skips them instead of
// booking doubles.
func (imp *Importer) existingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := imp.ledgerSvc.ListTransactions(ctx, dto.ListTransactionsParams{})
	if err != nil {
		// No ledgers yet means nothing can be duplicated.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return txns, nil
}

func (imp *Importer) saveTransaction(ctx context.Context, pending *pendingTransaction, existing []domain.Transaction) (bool, error) {
	candidate := domain.Transaction{
		Date:            pending.date,
		Description:     pending.description,
		InvoiceNumber:   pending.invoiceNumber,
		ContactID:       pending.contactID,
		DebitAccountID:  pending.debitAccountID,
		CreditAccountID: pending.creditAccountID,
		Amount:          pending.amount,
	}
	for _, txn := range existing {
		if txn.Equal(candidate) {
			return false, nil
		}
	}

	_, err := imp.ledgerSvc.RecordTransaction(ctx, dto.CreateTransactionRequest{
		Date:            pending.date,
		Description:     pending.description,
		InvoiceNumber:   pending.invoiceNumber,
		ContactID:       pending.contactID,
		DebitAccountID:  pending.debitAccountID,
		CreditAccountID: pending.creditAccountID,
		Amount:          pending.amount,
	})
	if err != nil {
		return false, fmt.Errorf("row %d: %w", pending.row, err)
	}
	return true, nil
}
