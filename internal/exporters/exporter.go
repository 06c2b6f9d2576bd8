// Package exporters shapes the derived reports into typed cell matrices
// and serializes them to delimited files. The matrix is the only contract
// between report shaping and file writing, so other spreadsheet formats
// can be added without touching the report code.
package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
)

func balanceItemRows(items []domain.BalanceItem, sideHeader string) domain.Matrix {
	matrix := domain.Matrix{
		{domain.StringCell("Account"), domain.StringCell("Description"), domain.StringCell(sideHeader)},
	}
	for _, item := range items {
		matrix = append(matrix, domain.Row{
			domain.StringCell(item.Account.Code),
			domain.StringCell(item.Account.Name),
			domain.NumberCell(item.Value.Decimal),
		})
	}
	return matrix
}

// BalanceMatrix renders a balance sheet as two side-by-side sub-tables,
// debit items on the left and credit items on the right, followed by a
// Total row carrying the (equal) grand total of each side.
func BalanceMatrix(balance *domain.Balance) domain.Matrix {
	debitSide := balanceItemRows(balance.DebitItems, "Debit")
	creditSide := balanceItemRows(balance.CreditItems, "Credit")

	matrix := domain.ConcatenateMatrices(debitSide, creditSide)
	matrix = append(matrix, domain.Row{
		domain.StringCell("Total"),
		domain.StringCell(""),
		domain.NumberCell(balance.DebitSum()),
		domain.StringCell("Total"),
		domain.StringCell(""),
		domain.NumberCell(balance.CreditSum()),
	})
	return matrix
}

func profitLossLineRow(line domain.ProfitLossLine) domain.Row {
	row := domain.Row{
		domain.StringCell(line.Account.Code),
		domain.StringCell(line.Account.Name),
	}
	if line.Debit.Valid {
		row = append(row, domain.NumberCell(line.Debit.Decimal))
	} else {
		row = append(row, domain.Cell{})
	}
	if line.Credit.Valid {
		row = append(row, domain.NumberCell(line.Credit.Decimal))
	} else {
		row = append(row, domain.Cell{})
	}
	return row
}

// ProfitLossMatrix renders a profit and loss statement: one row per line,
// the Profit or Loss total line when present, and a Total row repeating
// the grand total in both amount columns.
func ProfitLossMatrix(report *domain.ProfitLoss) domain.Matrix {
	matrix := domain.Matrix{
		{domain.StringCell("Account"), domain.StringCell("Description"), domain.StringCell("Debit"), domain.StringCell("Credit")},
	}
	for _, line := range report.Lines {
		matrix = append(matrix, profitLossLineRow(line))
	}
	if report.Total != nil {
		matrix = append(matrix, profitLossLineRow(*report.Total))
	}

	matrix = append(matrix, domain.Row{
		domain.StringCell("Total"),
		domain.StringCell(""),
		domain.NumberCell(report.DebitSum()),
		domain.NumberCell(report.CreditSum()),
	})
	return matrix
}

// WriteCSV serializes a matrix to CSV, one record per row.
func WriteCSV(w io.Writer, matrix domain.Matrix) error {
	writer := csv.NewWriter(w)
	for _, row := range matrix {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = cell.Render()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile serializes a matrix to a new file, creating parent
// directories as needed.
func WriteCSVFile(path string, matrix domain.Matrix) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, matrix); err != nil {
		return err
	}
	return f.Close()
}
