package auth

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctor-dialogue-server/internal/domain"
)

type memCredentials struct {
	users map[string]string
}

func newMemCredentials() *memCredentials {
	return &memCredentials{users: map[string]string{}}
}

func (m *memCredentials) CreateUser(_ context.Context, username, password string) error {
	if _, ok := m.users[username]; ok {
		return domain.ErrUsernameTaken
	}
	m.users[username] = password
	return nil
}

func (m *memCredentials) GetPassword(_ context.Context, username string) (string, error) {
	p, ok := m.users[username]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func testService() *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(newMemCredentials(), logger)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	err := svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_EmptyFields(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	var vErr *domain.ValidationError

	err := svc.Register(ctx, "  ", "secret")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)

	err = svc.Register(ctx, "alice", "")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := testService()
	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	assert.NoError(t, svc.Login(ctx, "alice", "secret"))
	assert.ErrorIs(t, svc.Login(ctx, "alice", "wrong"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, "ghost", "secret"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, "", ""), domain.ErrInvalidCredentials)
}

func TestLogin_TrimsUsername(t *testing.T) {
	ctx := context.Background()
	svc := testService()
	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	assert.NoError(t, svc.Login(ctx, " alice ", "secret"))
}
