// Package session holds the client's authentication state: the bearer token
// and the cached user profile, persisted under the same fixed keys the web
// client kept in browser localStorage.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"kharcha/internal/core"
	"kharcha/internal/gateway"
	"kharcha/internal/log"
	"kharcha/internal/storage"
)

const (
	keyToken    = "token"
	keyUserType = "user_type"
	keyUser     = "user"
)

// Authenticator is the slice of the gateway the login operation needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (gateway.LoginResult, error)
}

type Store struct {
	local  *storage.LocalStore
	logger *log.Logger
}

func NewStore(local *storage.LocalStore, logger *log.Logger) *Store {
	return &Store{
		local:  local,
		logger: logger.WithComponent(log.ComponentSession),
	}
}

// gateway.Client expires the session on 401 through this interface.
var _ gateway.Credentials = (*Store)(nil)

// Login exchanges credentials via the gateway and persists the session on
// success. A gateway failure is surfaced unchanged and nothing is written.
// The user type is normalized once here, at the storage boundary, so reads
// never have to deal with the quoted-string form again.
func (s *Store) Login(ctx context.Context, auth Authenticator, email, password string) (core.User, error) {
	result, err := auth.Login(ctx, email, password)
	if err != nil {
		return core.User{}, err
	}

	user := result.User
	user.Type = core.NormalizeUserType(string(user.Type))

	userJSON, err := json.Marshal(user)
	if err != nil {
		return core.User{}, fmt.Errorf("encode user profile: %w", err)
	}

	if err := s.local.Set(ctx, keyToken, result.Token); err != nil {
		return core.User{}, fmt.Errorf("persist token: %w", err)
	}
	if err := s.local.Set(ctx, keyUserType, string(user.Type)); err != nil {
		return core.User{}, fmt.Errorf("persist user type: %w", err)
	}
	if err := s.local.Set(ctx, keyUser, string(userJSON)); err != nil {
		return core.User{}, fmt.Errorf("persist user profile: %w", err)
	}

	s.logger.InfoContext(ctx, "Logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserEmail, user.Email,
		log.FieldUserType, string(user.Type))
	return user, nil
}

// Logout clears every persisted session field unconditionally. It never
// fails; storage problems are logged and swallowed because there is nothing
// a caller could do about them anyway.
func (s *Store) Logout(ctx context.Context) {
	if err := s.local.Delete(ctx, keyToken, keyUserType, keyUser); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear session",
			log.FieldOperation, log.OpLogout, log.FieldError, err)
		return
	}
	s.logger.InfoContext(ctx, "Logged out", log.FieldOperation, log.OpLogout)
}

// CurrentUser returns the cached profile, if any. It only reads local state;
// no network round trip happens here.
func (s *Store) CurrentUser(ctx context.Context) (core.User, bool) {
	raw, ok, err := s.local.Get(ctx, keyUser)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read user profile", log.FieldError, err)
		return core.User{}, false
	}
	if !ok {
		return core.User{}, false
	}
	var user core.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.ErrorContext(ctx, "Corrupt user profile in local store", log.FieldError, err)
		return core.User{}, false
	}
	return user, true
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok, err := s.local.Get(ctx, keyToken)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read token", log.FieldError, err)
		return false
	}
	return ok
}

// IsAdmin reports whether the cached user type is admin. Values written by
// the old web client may still be JSON-quoted, so the stored string goes
// through normalization before the comparison.
func (s *Store) IsAdmin(ctx context.Context) bool {
	raw, ok, err := s.local.Get(ctx, keyUserType)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read user type", log.FieldError, err)
		return false
	}
	if !ok {
		return false
	}
	return core.NormalizeUserType(raw).IsAdmin()
}

// Token implements gateway.Credentials.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	return s.local.Get(ctx, keyToken)
}

// Expire implements gateway.Credentials: a 401 anywhere wipes the session.
func (s *Store) Expire(ctx context.Context) error {
	s.Logout(ctx)
	return nil
}
