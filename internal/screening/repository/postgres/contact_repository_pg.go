package postgres

import (
	"context"
	"log/slog"

	"github.com/treloarai/callscreen/internal/screening/domain"
)

// PgContactRepository is the durable backing for whitelisted contacts.
type PgContactRepository struct {
	db     PgxIface
	logger *slog.Logger
}

func NewPgContactRepository(db PgxIface, logger *slog.Logger) *PgContactRepository {
	return &PgContactRepository{db: db, logger: logger.With("component", "contact_repository_pg")}
}

func (r *PgContactRepository) Create(ctx context.Context, ct *domain.Contact) error {
	query := `
		INSERT INTO contacts (phone_number, contact_name, relationship, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, ct.PhoneNumber, ct.ContactName, ct.Relationship, ct.CreatedAt).Scan(&ct.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.WarnContext(ctx, "Duplicate whitelist phone number", "phone_number", ct.PhoneNumber)
			return domain.ErrDuplicateEntry
		}
		r.logger.ErrorContext(ctx, "Error creating contact", "error", err, "phone_number", ct.PhoneNumber)
		return err
	}
	return nil
}

func (r *PgContactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	query := `
		SELECT id, phone_number, contact_name, relationship, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing contacts", "error", err)
		return nil, err
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		ct := &domain.Contact{}
		if err := rows.Scan(&ct.ID, &ct.PhoneNumber, &ct.ContactName, &ct.Relationship, &ct.CreatedAt); err != nil {
			r.logger.ErrorContext(ctx, "Error scanning contact row", "error", err)
			return nil, err
		}
		contacts = append(contacts, ct)
	}
	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating contact rows", "error", err)
		return nil, err
	}
	return contacts, nil
}

// Delete removes a contact by id. Deleting an absent id is not an error;
// the API treats DELETE as idempotent in effect.
func (r *PgContactRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contacts WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.logger.ErrorContext(ctx, "Error deleting contact", "error", err, "contact_id", id)
		return err
	}
	return nil
}
