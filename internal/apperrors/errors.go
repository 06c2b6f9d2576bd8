package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource,
// e.g. deleting an account that is still referenced by transactions.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ImportError is a user-data error raised while importing a ledger spreadsheet.
// Row is the 1-based spreadsheet row (header = row 1) the error was detected on.
type ImportError struct {
	Row int
	Msg string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
}

// NewImportError creates an ImportError for the given spreadsheet row.
func NewImportError(row int, format string, args ...any) *ImportError {
	return &ImportError{Row: row, Msg: fmt.Sprintf(format, args...)}
}
