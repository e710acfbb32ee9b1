// Package auth implements username/password registration and login on
// top of the credential store.
package auth

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/doctor-dialogue-server/internal/domain"
)

// Service validates credentials against the store.
type Service struct {
	store domain.CredentialStore
	log   *logrus.Logger
}

// NewService creates a new auth service.
func NewService(store domain.CredentialStore, logger *logrus.Logger) *Service {
	return &Service{store: store, log: logger}
}

// Register creates a new account. Usernames are stored as entered,
// surrounding whitespace stripped.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.NewValidationError("username", "username is required", username)
	}
	if password == "" {
		return domain.NewValidationError("password", "password is required", "")
	}

	if err := s.store.CreateUser(ctx, username, password); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"username": username,
	}).Info("Account registered")
	return nil
}

// Login checks the credentials. Password storage and comparison are
// verbatim; any mismatch or unknown username yields the same generic
// ErrInvalidCredentials so login failures do not reveal which field
// was wrong.
func (s *Service) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	stored, err := s.store.GetPassword(ctx, username)
	if err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrInvalidCredentials
		}
		return err
	}
	if stored != password {
		s.log.WithFields(logrus.Fields{
			"username": username,
		}).Warn("Failed login attempt")
		return domain.ErrInvalidCredentials
	}

	s.log.WithFields(logrus.Fields{
		"username": username,
	}).Info("User logged in")
	return nil
}
