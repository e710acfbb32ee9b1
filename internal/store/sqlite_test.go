package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctor-dialogue-server/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "doctor.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_Credentials(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.CreateUser(ctx, "alice", "secret"))

	err := s.CreateUser(ctx, "alice", "other")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	password, err := s.GetPassword(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "secret", password)

	_, err = s.GetPassword(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLite_ProfileUpsert(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.GetProfile(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.SaveProfile(ctx, &domain.UserProfile{
		Username:  "alice",
		AgeGroup:  domain.AgeGroupAdult,
		Allergies: "penicillin",
	}))
	require.NoError(t, s.SaveProfile(ctx, &domain.UserProfile{
		Username:  "alice",
		AgeGroup:  domain.AgeGroupAdult,
		Allergies: "penicillin",
		Lifestyle: "runs daily",
	}))

	p, err := s.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.AgeGroupAdult, p.AgeGroup)
	assert.Equal(t, "penicillin", p.Allergies)
	assert.Equal(t, "runs daily", p.Lifestyle)
}

func TestSQLite_PrescriptionHistory(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first := &domain.PrescriptionRecord{
		Username: "alice", Text: "take rest", Timestamp: "2025-03-14 09:30:00",
	}
	second := &domain.PrescriptionRecord{
		Username: "alice", Text: "hydrate", Timestamp: "2025-03-15 10:00:00",
	}
	require.NoError(t, s.SavePrescription(ctx, first))
	require.NoError(t, s.SavePrescription(ctx, second))
	assert.NotZero(t, first.ID)
	require.NoError(t, s.SavePrescription(ctx, &domain.PrescriptionRecord{
		Username: "bob", Text: "other user", Timestamp: "2025-03-16 08:00:00",
	}))

	list, err := s.ListPrescriptions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "hydrate", list[0].Text)
	assert.Equal(t, "take rest", list[1].Text)

	got, err := s.GetPrescription(ctx, "alice", "2025-03-14 09:30:00")
	require.NoError(t, err)
	assert.Equal(t, "take rest", got.Text)

	require.NoError(t, s.DeletePrescription(ctx, "alice", "2025-03-14 09:30:00"))
	err = s.DeletePrescription(ctx, "alice", "2025-03-14 09:30:00")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err = s.ListPrescriptions(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLite_TimestampRepair(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prescriptions (username, prescription, timestamp) VALUES (?, ?, ?)`,
		"alice", "legacy entry", "2024-11-d 14:22:05")
	require.NoError(t, err)

	require.NoError(t, s.repairTimestamps(ctx))

	got, err := s.GetPrescription(ctx, "alice", "2024-11-28 14:22:05")
	require.NoError(t, err)
	assert.Equal(t, "legacy entry", got.Text)
}

func TestSQLite_Health(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.Health(context.Background()))
}
