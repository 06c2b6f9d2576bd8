package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
)

// contactService manages counterparties.
type contactService struct {
	BaseService
	contactRepo portsrepo.ContactRepository
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo portsrepo.ContactRepository) portssvc.ContactSvc {
	return &contactService{contactRepo: contactRepo}
}

var _ portssvc.ContactSvc = (*contactService)(nil)

func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest) (*domain.Contact, error) {
	contact := domain.Contact{
		ContactID:   uuid.NewString(),
		Name:        req.Name,
		BankAccount: req.BankAccount,
		Email:       req.Email,
		AuditFields: domain.NewAuditFields(time.Now().UTC()),
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		s.LogError(ctx, err, "Failed to save contact", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Contact created", slog.String("contact_id", contact.ContactID))
	return &contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	return s.contactRepo.FindContactByID(ctx, contactID)
}

func (s *contactService) GetContactByName(ctx context.Context, name string) (*domain.Contact, error) {
	return s.contactRepo.FindContactByName(ctx, name)
}

func (s *contactService) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := s.contactRepo.ListContacts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contacts")
		return nil, err
	}
	return contacts, nil
}

// DeleteContact removes a contact. Contacts still referenced by accounts
// or transactions are protected; the repository reports a conflict.
func (s *contactService) DeleteContact(ctx context.Context, contactID string) error {
	if err := s.contactRepo.DeleteContact(ctx, contactID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete contact", slog.String("contact_id", contactID))
		}
		return err
	}
	s.LogInfo(ctx, "Contact deleted", slog.String("contact_id", contactID))
	return nil
}
