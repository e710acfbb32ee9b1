// Package catalog provides the static condition lookup table backing
// prescription generation. The table is rebuilt from the seed dataset at
// every open and is read-only for the rest of the process lifetime.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/doctor-dialogue-server/internal/domain"
)

const cacheSize = 256

// SQLiteCatalog implements domain.ConditionCatalog over a SQLite table.
type SQLiteCatalog struct {
	db    *sql.DB
	log   *logrus.Logger
	cache *lru.Cache[cacheKey, []domain.ConditionRecord]
}

type cacheKey struct {
	symptom  string
	ageGroup domain.AgeGroup
	severity domain.Severity
}

// Open opens (or creates) the catalog database at path, drops any previous
// conditions table and reseeds it with the static dataset.
func Open(path string, logger *logrus.Logger) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	if err := reseed(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding catalog: %w", err)
	}

	cache, err := lru.New[cacheKey, []domain.ConditionRecord](cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog cache: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"path":    path,
		"records": len(seedRecords),
	}).Info("Condition catalog loaded")

	return &SQLiteCatalog{db: db, log: logger, cache: cache}, nil
}

// reseed drops and recreates the conditions table so the process always
// runs against the current seed dataset.
func reseed(db *sql.DB) error {
	if _, err := db.Exec("DROP TABLE IF EXISTS conditions"); err != nil {
		return err
	}

	schema := `
	CREATE TABLE conditions (
		id INTEGER PRIMARY KEY,
		name TEXT,
		symptom TEXT,
		age_group TEXT,
		severity TEXT,
		treatment TEXT,
		description TEXT,
		severity_info TEXT,
		causes TEXT,
		prevention TEXT
	);
	CREATE INDEX idx_conditions_key ON conditions(symptom, age_group, severity);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO conditions (name, symptom, age_group, severity, treatment, description, severity_info, causes, prevention)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range seedRecords {
		if _, err := stmt.Exec(
			rec.Name, rec.Symptom, string(rec.AgeGroup), string(rec.Severity),
			rec.Treatment, rec.Description, rec.SeverityInfo, rec.Causes, rec.Prevention,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Lookup returns every record for (symptom, ageGroup, severity), in seed
// order. An exact miss retries with mild severity; a miss after the
// fallback returns an empty slice with no error, and the caller emits an
// advisory line instead of failing.
func (c *SQLiteCatalog) Lookup(ctx context.Context, symptom string, ageGroup domain.AgeGroup, severity domain.Severity) ([]domain.ConditionRecord, error) {
	key := cacheKey{symptom: symptom, ageGroup: ageGroup, severity: severity}
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	records, err := c.query(ctx, symptom, ageGroup, severity)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && severity != domain.SeverityMild {
		records, err = c.query(ctx, symptom, ageGroup, domain.SeverityMild)
		if err != nil {
			return nil, err
		}
	}

	c.cache.Add(key, records)

	c.log.WithFields(logrus.Fields{
		"symptom":   symptom,
		"age_group": ageGroup.String(),
		"severity":  severity.String(),
		"matches":   len(records),
	}).Debug("Catalog lookup")

	return records, nil
}

func (c *SQLiteCatalog) query(ctx context.Context, symptom string, ageGroup domain.AgeGroup, severity domain.Severity) ([]domain.ConditionRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, symptom, age_group, severity, treatment, description, severity_info, causes, prevention
		FROM conditions
		WHERE symptom = ? AND age_group = ? AND severity = ?
		ORDER BY id`,
		symptom, string(ageGroup), string(severity))
	if err != nil {
		return nil, fmt.Errorf("querying conditions: %w", err)
	}
	defer rows.Close()

	var records []domain.ConditionRecord
	for rows.Next() {
		var rec domain.ConditionRecord
		var age, sev string
		if err := rows.Scan(&rec.Name, &rec.Symptom, &age, &sev,
			&rec.Treatment, &rec.Description, &rec.SeverityInfo, &rec.Causes, &rec.Prevention); err != nil {
			return nil, fmt.Errorf("scanning condition: %w", err)
		}
		rec.AgeGroup = domain.AgeGroup(age)
		rec.Severity = domain.Severity(sev)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the underlying database handle.
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}
