package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
)

// ledgerService records and maintains transactions. A transaction always
// belongs to the ledger of its date's year; ledgers are created lazily.
type ledgerService struct {
	BaseService
	chartRepo   portsrepo.ChartRepository
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(chartRepo portsrepo.ChartRepository, accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository) portssvc.LedgerSvc {
	return &ledgerService{chartRepo: chartRepo, accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// ledgerForYear returns the ledger for the given year in the chart,
// creating it when absent.
func (s *ledgerService) ledgerForYear(ctx context.Context, chartID string, year int) (*domain.Ledger, error) {
	ledger, err := s.ledgerRepo.FindLedgerByYear(ctx, chartID, year)
	if err == nil {
		return ledger, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up ledger for year %d: %w", year, err)
	}

	newLedger := domain.Ledger{
		LedgerID:    uuid.NewString(),
		ChartID:     chartID,
		Year:        year,
		AuditFields: domain.NewAuditFields(time.Now().UTC()),
	}
	if err := s.ledgerRepo.SaveLedger(ctx, newLedger); err != nil {
		return nil, fmt.Errorf("failed to create ledger for year %d: %w", year, err)
	}
	s.LogInfo(ctx, "Ledger created", slog.Int("year", year), slog.String("ledger_id", newLedger.LedgerID))
	return &newLedger, nil
}

// RecordTransaction validates and stores a new transaction in the ledger
// of its date's year. When no contact is given, the transaction inherits
// the contact linked to the debit account, or failing that the credit
// account.
func (s *ledgerService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	if req.DebitAccountID == req.CreditAccountID {
		return nil, fmt.Errorf("debit and credit account must differ: %w", apperrors.ErrValidation)
	}

	debitAccount, err := s.accountRepo.FindAccountByID(ctx, req.DebitAccountID)
	if err != nil {
		return nil, fmt.Errorf("debit account: %w", err)
	}
	creditAccount, err := s.accountRepo.FindAccountByID(ctx, req.CreditAccountID)
	if err != nil {
		return nil, fmt.Errorf("credit account: %w", err)
	}

	chart, err := s.chartRepo.GetDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get default chart: %w", err)
	}
	ledger, err := s.ledgerForYear(ctx, chart.ChartID, req.Date.Year())
	if err != nil {
		return nil, err
	}

	contactID := req.ContactID
	if contactID == "" {
		if debitAccount.ContactID != "" {
			contactID = debitAccount.ContactID
		} else {
			contactID = creditAccount.ContactID
		}
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		LedgerID:        ledger.LedgerID,
		Date:            req.Date,
		Description:     req.Description,
		InvoiceNumber:   req.InvoiceNumber,
		ContactID:       contactID,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          req.Amount,
		AuditFields:     domain.NewAuditFields(time.Now().UTC()),
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("description", req.Description))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", txn.Amount.String()),
	)
	return &txn, nil
}

func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.ledgerRepo.FindTransactionByID(ctx, transactionID)
}

// UpdateTransaction changes the mutable fields of a transaction. Changing
// the date across a year boundary moves the transaction to that year's
// ledger.
func (s *ledgerService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.InvoiceNumber != nil {
		txn.InvoiceNumber = *req.InvoiceNumber
	}
	if req.ContactID != nil {
		txn.ContactID = *req.ContactID
	}
	if req.Date != nil {
		oldYear := txn.Date.Year()
		txn.Date = *req.Date
		if req.Date.Year() != oldYear {
			chart, err := s.chartRepo.GetDefault(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get default chart: %w", err)
			}
			ledger, err := s.ledgerForYear(ctx, chart.ChartID, req.Date.Year())
			if err != nil {
				return nil, err
			}
			txn.LedgerID = ledger.LedgerID
		}
	}

	txn.Touch(time.Now().UTC())
	if err := s.ledgerRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.ledgerRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	chart, err := s.chartRepo.GetDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get default chart: %w", err)
	}
	filter := portsrepo.TransactionFilter{
		Year:      params.Year,
		AccountID: params.AccountID,
	}
	return s.ledgerRepo.ListTransactions(ctx, chart.ChartID, filter)
}

func (s *ledgerService) GetLedgerByYear(ctx context.Context, year int) (*domain.Ledger, error) {
	chart, err := s.chartRepo.GetDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get default chart: %w", err)
	}
	return s.ledgerRepo.FindLedgerByYear(ctx, chart.ChartID, year)
}
