package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/core"
	"kharcha/internal/gateway"
	"kharcha/internal/log"
	"kharcha/internal/storage"
)

type fakeAuth struct {
	result gateway.LoginResult
	err    error
}

func (f fakeAuth) Login(ctx context.Context, email, password string) (gateway.LoginResult, error) {
	return f.result, f.err
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	local, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	return NewStore(local, log.New(log.DefaultConfig()))
}

func TestLoginPersistsSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	auth := fakeAuth{result: gateway.LoginResult{
		Token: "tok123",
		User:  core.User{Email: "a@b.c", Name: "Alice", Type: `"admin"`},
	}}

	user, err := s.Login(ctx, auth, "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, core.Admin, user.Type, "type normalized at the storage boundary")

	assert.True(t, s.IsAuthenticated(ctx))
	assert.True(t, s.IsAdmin(ctx))

	cached, ok := s.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, "Alice", cached.Name)

	token, ok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok123", token)
}

func TestLoginFailurePersistsNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	auth := fakeAuth{err: gateway.ErrInvalidCredentials}
	_, err := s.Login(ctx, auth, "a@b.c", "wrong")
	assert.True(t, errors.Is(err, gateway.ErrInvalidCredentials), "gateway error surfaced unchanged")

	assert.False(t, s.IsAuthenticated(ctx))
	_, ok := s.CurrentUser(ctx)
	assert.False(t, ok)
}

func TestLogoutClearsEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	auth := fakeAuth{result: gateway.LoginResult{Token: "tok", User: core.User{Email: "a@b.c", Type: "standard"}}}
	_, err := s.Login(ctx, auth, "a@b.c", "secret")
	require.NoError(t, err)

	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated(ctx))
	assert.False(t, s.IsAdmin(ctx))
	_, ok := s.CurrentUser(ctx)
	assert.False(t, ok)

	// Logout on an already-empty session is fine.
	s.Logout(ctx)
}

func TestExpireClearsSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	auth := fakeAuth{result: gateway.LoginResult{Token: "tok", User: core.User{Email: "a@b.c", Type: "admin"}}}
	_, err := s.Login(ctx, auth, "a@b.c", "secret")
	require.NoError(t, err)

	require.NoError(t, s.Expire(ctx))
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestIsAdminToleratesLegacyQuoting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A store written by the old web client kept the JSON-quoted form.
	require.NoError(t, s.local.Set(ctx, keyUserType, `"admin"`))
	assert.True(t, s.IsAdmin(ctx))

	require.NoError(t, s.local.Set(ctx, keyUserType, `"standard"`))
	assert.False(t, s.IsAdmin(ctx))
}

func TestIsAdminFalseWithoutSession(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.IsAdmin(context.Background()))
}
