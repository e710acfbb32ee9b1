package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/doctor-dialogue-server/internal/domain"
)

const postgresSchema = `
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
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL,
	prescription TEXT NOT NULL,
	timestamp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prescriptions_username ON prescriptions(username);
`

// PostgresConfig holds the connection settings for the Postgres backend.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string
	MaxConns int
}

// PostgresStore persists to PostgreSQL via lib/pq.
type PostgresStore struct {
	db  *sql.DB
	log *logrus.Logger
}

// OpenPostgres connects to Postgres, verifies the connection, and
// applies the schema.
func OpenPostgres(ctx context.Context, cfg PostgresConfig, logger *logrus.Logger) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying postgres schema: %w", err)
	}

	s := &PostgresStore{db: db, log: logger}
	if err := s.repairTimestamps(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.Database,
	}).Info("Postgres store opened")

	return s, nil
}

func (s *PostgresStore) repairTimestamps(ctx context.Context) error {
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
func (s *PostgresStore) CreateUser(ctx context.Context, username, password string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE username = $1`, username).Scan(&exists)
	if err == nil {
		return domain.ErrUsernameTaken
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking username: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2)`, username, password); err != nil {
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
func (s *PostgresStore) GetPassword(ctx context.Context, username string) (string, error) {
	var password string
	err := s.db.QueryRowContext(ctx,
		`SELECT password FROM users WHERE username = $1`, username).Scan(&password)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting password: %w", err)
	}
	return password, nil
}

// SaveProfile upserts the persistent patient profile.
func (s *PostgresStore) SaveProfile(ctx context.Context, p *domain.UserProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (username, age_group, allergies, history, lifestyle)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE SET
			age_group = EXCLUDED.age_group,
			allergies = EXCLUDED.allergies,
			history = EXCLUDED.history,
			lifestyle = EXCLUDED.lifestyle`,
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
func (s *PostgresStore) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var ageGroup string
	err := s.db.QueryRowContext(ctx, `
		SELECT username, age_group, allergies, history, lifestyle
		FROM user_profiles WHERE username = $1`, username).
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
func (s *PostgresStore) SavePrescription(ctx context.Context, rec *domain.PrescriptionRecord) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO prescriptions (username, prescription, timestamp) VALUES ($1, $2, $3) RETURNING id`,
		rec.Username, rec.Text, rec.Timestamp).Scan(&rec.ID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"username": rec.Username,
			"error":    err,
		}).Error("Failed to save prescription")
		return fmt.Errorf("saving prescription: %w", err)
	}
	return nil
}

// ListPrescriptions returns the user's history, newest first.
func (s *PostgresStore) ListPrescriptions(ctx context.Context, username string) ([]domain.PrescriptionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, prescription, timestamp
		FROM prescriptions WHERE username = $1
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
func (s *PostgresStore) GetPrescription(ctx context.Context, username, timestamp string) (*domain.PrescriptionRecord, error) {
	var rec domain.PrescriptionRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, prescription, timestamp
		FROM prescriptions WHERE username = $1 AND timestamp = $2`, username, timestamp).
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
func (s *PostgresStore) DeletePrescription(ctx context.Context, username, timestamp string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM prescriptions WHERE username = $1 AND timestamp = $2`, username, timestamp)
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
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.log.Info("Postgres store closed")
	return s.db.Close()
}
