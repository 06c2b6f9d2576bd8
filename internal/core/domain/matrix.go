package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CellKind discriminates the typed cells of a report matrix.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellDate
)

// Cell is one typed spreadsheet cell. The zero value is an empty cell.
type Cell struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
	Date   time.Time
}

// StringCell returns a string-valued cell.
func StringCell(s string) Cell {
	return Cell{Kind: CellString, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(d decimal.Decimal) Cell {
	return Cell{Kind: CellNumber, Number: d}
}

// DateCell returns a date-valued cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Date: t}
}

// Render serializes the cell for delimited-text output. Numbers keep two
// decimals, dates use ISO form, empty cells render as "".
func (c Cell) Render() string {
	switch c.Kind {
	case CellString:
		return c.Text
	case CellNumber:
		return c.Number.StringFixed(2)
	case CellDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Row is an ordered sequence of cells.
type Row []Cell

// Matrix is the generic tabular structure handed to the spreadsheet
// writer: ordered rows of typed cells.
type Matrix []Row

// Width returns the widest row of the matrix.
func (m Matrix) Width() int {
	width := 0
	for _, row := range m {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// ConcatenateMatrices joins two matrices side by side. The shorter matrix
// is padded with blank rows, and every left-hand row is padded to the left
// matrix's full width so the right-hand columns line up.
func ConcatenateMatrices(left, right Matrix) Matrix {
	leftWidth := left.Width()
	height := len(left)
	if len(right) > height {
		height = len(right)
	}

	combined := make(Matrix, 0, height)
	for i := 0; i < height; i++ {
		row := make(Row, leftWidth)
		if i < len(left) {
			copy(row, left[i])
		}
		if i < len(right) {
			row = append(row, right[i]...)
		}
		combined = append(combined, row)
	}
	return combined
}
