package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctor-dialogue-server/internal/domain"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresStore{db: db, log: testLogger()}, mock
}

func TestPostgres_CreateUser(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT 1 FROM users`).
		WithArgs("alice").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("alice", "secret").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.CreateUser(ctx, "alice", "secret"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateUser_Duplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT 1 FROM users`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	err := s.CreateUser(context.Background(), "alice", "secret")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetPassword_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT password FROM users`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetPassword(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_SavePrescription(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO prescriptions`).
		WithArgs("alice", "take rest", "2025-03-14 09:30:00").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	rec := &domain.PrescriptionRecord{
		Username: "alice", Text: "take rest", Timestamp: "2025-03-14 09:30:00",
	}
	require.NoError(t, s.SavePrescription(context.Background(), rec))
	assert.Equal(t, int64(7), rec.ID)
}

func TestPostgres_ListPrescriptions(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "username", "prescription", "timestamp"}).
		AddRow(int64(2), "alice", "hydrate", "2025-03-15 10:00:00").
		AddRow(int64(1), "alice", "take rest", "2025-03-14 09:30:00")
	mock.ExpectQuery(`SELECT id, username, prescription, timestamp`).
		WithArgs("alice").
		WillReturnRows(rows)

	list, err := s.ListPrescriptions(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "hydrate", list[0].Text)
}

func TestPostgres_DeletePrescription_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM prescriptions`).
		WithArgs("alice", "2025-03-14 09:30:00").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeletePrescription(context.Background(), "alice", "2025-03-14 09:30:00")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_RepairTimestamps(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE prescriptions SET timestamp`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, s.repairTimestamps(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
