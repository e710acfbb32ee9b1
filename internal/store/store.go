// Package store provides persistence for users, profiles, and
// prescription history over SQLite or PostgreSQL.
package store

import (
	"context"

	"github.com/doctor-dialogue-server/internal/domain"
)

// Store is the full persistence surface the server needs. Both backends
// implement it behind database/sql.
type Store interface {
	domain.CredentialStore
	domain.ProfileStore
	domain.PrescriptionStore

	Health(ctx context.Context) error
	Close() error
}
