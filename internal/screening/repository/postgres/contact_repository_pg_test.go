package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treloarai/callscreen/internal/screening/domain"
)

func TestPgContactRepository_Create(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("AssignsGeneratedID", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPgContactRepository(mockPool, logger)
		contact := domain.NewContact("+15551230000", "New Person", "Friend")

		rows := mockPool.NewRows([]string{"id"}).AddRow(int64(7))
		mockPool.ExpectQuery(`INSERT INTO contacts`).
			WithArgs(contact.PhoneNumber, contact.ContactName, contact.Relationship, contact.CreatedAt).
			WillReturnRows(rows)

		require.NoError(t, repo.Create(context.Background(), contact))
		assert.Equal(t, int64(7), contact.ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("DuplicateNumberMapsToDomainError", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPgContactRepository(mockPool, logger)
		contact := domain.NewContact("+15551230000", "Dup", "Friend")

		mockPool.ExpectQuery(`INSERT INTO contacts`).
			WithArgs(contact.PhoneNumber, contact.ContactName, contact.Relationship, contact.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "contacts_phone_number_key"})

		err = repo.Create(context.Background(), contact)
		assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPgContactRepository_List(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPgContactRepository(mockPool, logger)
	now := time.Now().UTC()

	rows := mockPool.NewRows([]string{"id", "phone_number", "contact_name", "relationship", "created_at"}).
		AddRow(int64(2), "+1987654321", "Dr. Smith", "Doctor", now).
		AddRow(int64(1), "+1234567890", "Emergency Contact", "Family", now.Add(-time.Hour))
	mockPool.ExpectQuery(`SELECT id, phone_number, contact_name, relationship, created_at\s+FROM contacts`).
		WillReturnRows(rows)

	contacts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, int64(2), contacts[0].ID)
	assert.Equal(t, "Dr. Smith", contacts[0].ContactName)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPgContactRepository_Delete(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("ExistingRow", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPgContactRepository(mockPool, logger)
		mockPool.ExpectExec(`DELETE FROM contacts WHERE id = \$1`).
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(context.Background(), 3))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("AbsentRowIsNoOp", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPgContactRepository(mockPool, logger)
		mockPool.ExpectExec(`DELETE FROM contacts WHERE id = \$1`).
			WithArgs(int64(999)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.NoError(t, repo.Delete(context.Background(), 999))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
