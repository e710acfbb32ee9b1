package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/doctor-dialogue-server/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_profiles (
	username TEXT PRIMARY KEY,
	age_group TEXT NOT NULL DEFAULT '',
	allergies TEXT NOT NULL DEFAULT '',
	history TEXT NOT NULL DEFAULT '',
	lifestyle TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS prescriptions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	prescription TEXT NOT NULL,
	timestamp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prescriptions_username ON prescriptions(username);
`

// SQLiteStore persists to a local SQLite file via modernc.org/sqlite.
type SQLiteStore struct {
	db  *sql.DB
	log *logrus.Logger
}

// OpenSQLite opens (creating if needed) the SQLite database at path,
// applies the schema, and repairs any malformed history timestamps left
// by older builds.
func OpenSQLite(path string, logger *logrus.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying sqlite schema: %w", err)
	}

	s := &SQLiteStore{db: db, log: logger}
	if err := s.repairTimestamps(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"path": path,
	}).Info("SQLite store opened")

	return s, nil
}

// repairTimestamps rewrites history rows whose day field was saved as
// the literal "d" by an old strftime bug, pinning them to day 28.
func (s *SQLiteStore) repairTimestamps(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE prescriptions SET timestamp = REPLACE(timestamp, '-d ', '-28 ') WHERE timestamp LIKE '%-d %'`)
	if err != nil {
		return fmt.Errorf("repairing prescription timestamps: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n > 0 {
		s.log.WithFields(logrus.Fields{
			"rows": n,
		}).Warn("Repaired malformed prescription timestamps")
	}
	return nil
}

// CreateUser inserts a new credential row.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, password string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE username = ?`, username).Scan(&exists)
	if err == nil {
		return domain.ErrUsernameTaken
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking username: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`, username, password); err != nil {
		s.log.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Error("Failed to create user")
		return fmt.Errorf("creating user: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"username": username,
	}).Info("User created")
	return nil
}

// GetPassword returns the stored password for the username.
func (s *SQLiteStore) GetPassword(ctx context.Context, username string) (string, error) {
	var password string
	err := s.db.QueryRowContext(ctx,
		`SELECT password FROM users WHERE username = ?`, username).Scan(&password)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting password: %w", err)
	}
	return password, nil
}

// SaveProfile upserts the persistent patient profile.
func (s *SQLiteStore) SaveProfile(ctx context.Context, p *domain.UserProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (username, age_group, allergies, history, lifestyle)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			age_group = excluded.age_group,
			allergies = excluded.allergies,
			history = excluded.history,
			lifestyle = excluded.lifestyle`,
		p.Username, string(p.AgeGroup), p.Allergies, p.History, p.Lifestyle)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"username": p.Username,
			"error":    err,
		}).Error("Failed to save profile")
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// GetProfile loads a stored profile.
func (s *SQLiteStore) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var ageGroup string
	err := s.db.QueryRowContext(ctx, `
		SELECT username, age_group, allergies, history, lifestyle
		FROM user_profiles WHERE username = ?`, username).
		Scan(&p.Username, &ageGroup, &p.Allergies, &p.History, &p.Lifestyle)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	p.AgeGroup = domain.AgeGroup(ageGroup)
	return &p, nil
}

// SavePrescription appends a prescription to the user's history and
// fills in the generated row id.
func (s *SQLiteStore) SavePrescription(ctx context.Context, rec *domain.PrescriptionRecord) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO prescriptions (username, prescription, timestamp) VALUES (?, ?, ?)`,
		rec.Username, rec.Text, rec.Timestamp)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"username": rec.Username,
			"error":    err,
		}).Error("Failed to save prescription")
		return fmt.Errorf("saving prescription: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// ListPrescriptions returns the user's history, newest first.
func (s *SQLiteStore) ListPrescriptions(ctx context.Context, username string) ([]domain.PrescriptionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, prescription, timestamp
		FROM prescriptions WHERE username = ?
		ORDER BY timestamp DESC, id DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}
	defer rows.Close()

	var out []domain.PrescriptionRecord
	for rows.Next() {
		var rec domain.PrescriptionRecord
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.Text, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning prescription row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prescription rows: %w", err)
	}
	return out, nil
}

// GetPrescription fetches one history entry by its timestamp.
func (s *SQLiteStore) GetPrescription(ctx context.Context, username, timestamp string) (*domain.PrescriptionRecord, error) {
	var rec domain.PrescriptionRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, prescription, timestamp
		FROM prescriptions WHERE username = ? AND timestamp = ?`, username, timestamp).
		Scan(&rec.ID, &rec.Username, &rec.Text, &rec.Timestamp)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting prescription: %w", err)
	}
	return &rec, nil
}

// DeletePrescription removes one history entry by its timestamp.
func (s *SQLiteStore) DeletePrescription(ctx context.Context, username, timestamp string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM prescriptions WHERE username = ? AND timestamp = ?`, username, timestamp)
	if err != nil {
		return fmt.Errorf("deleting prescription: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting prescription: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	s.log.WithFields(logrus.Fields{
		"username":  username,
		"timestamp": timestamp,
	}).Info("Prescription deleted")
	return nil
}

// Health pings the underlying database.
func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	s.log.Info("SQLite store closed")
	return s.db.Close()
}
