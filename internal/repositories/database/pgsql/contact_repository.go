package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
)

type PgxContactRepository struct {
	pool *pgxpool.Pool
}

func newPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactRepository {
	return &PgxContactRepository{pool: pool}
}

var _ portsrepo.ContactRepository = (*PgxContactRepository)(nil)

const contactColumns = `contact_id, name, bank_account, email, created_at, last_updated_at`

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var contact domain.Contact
	err := row.Scan(
		&contact.ContactID,
		&contact.Name,
		&contact.BankAccount,
		&contact.Email,
		&contact.CreatedAt,
		&contact.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	query := `
		INSERT INTO contacts (contact_id, name, bank_account, email, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		contact.ContactID,
		contact.Name,
		contact.BankAccount,
		contact.Email,
		contact.CreatedAt,
		contact.LastUpdatedAt,
	)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: contact named %q already exists", apperrors.ErrDuplicate, contact.Name)
		}
		return fmt.Errorf("failed to save contact %s: %w", contact.ContactID, err)
	}
	return nil
}

func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1;`
	contact, err := scanContact(r.pool.QueryRow(ctx, query, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact by ID %s: %w", contactID, err)
	}
	return contact, nil
}

func (r *PgxContactRepository) FindContactByName(ctx context.Context, name string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE name = $1;`
	contact, err := scanContact(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact by name %q: %w", name, err)
	}
	return contact, nil
}

func (r *PgxContactRepository) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY name;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return contacts, nil
}

func (r *PgxContactRepository) DeleteContact(ctx context.Context, contactID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE contact_id = $1;`, contactID)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrConflict) {
			return fmt.Errorf("%w: contact %s is still referenced", apperrors.ErrConflict, contactID)
		}
		return fmt.Errorf("failed to delete contact %s: %w", contactID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
