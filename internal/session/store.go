// Package session owns the authentication state: an in-memory snapshot
// backed by a durable token slot, serialized behind a mutex so concurrent
// login/logout/restore calls are safe by construction.
package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/asalazarq/fracturas-client/internal/errs"
	"github.com/asalazarq/fracturas-client/internal/model"
)

// Store is the single source of truth for the session. Only the bearer
// token is persisted; the user profile lives for the process lifetime.
type Store struct {
	mu      sync.Mutex
	storage TokenStorage
	log     *zap.Logger

	loading bool
	state   model.AuthState
}

func NewStore(storage TokenStorage, log *zap.Logger) *Store {
	return &Store{storage: storage, log: log, loading: true}
}

// CheckSession restores the persisted token, if any. It never fails:
// storage errors are logged and treated as "no session". Clears the
// loading flag once the check resolves.
func (s *Store) CheckSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	token, err := s.storage.Load()
	if err != nil {
		s.log.Warn("session restore failed, starting unauthenticated", zap.Error(err))
		return
	}
	if token == "" {
		return
	}
	// Profile is not persisted; the restored session carries the token only.
	s.state = model.AuthState{IsAuthenticated: true, Token: token}
}

// Login persists the token, then flips the in-memory session. On a
// persistence failure the session is left untouched and the caller must
// not proceed as authenticated.
func (s *Store) Login(token string, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(token); err != nil {
		return errs.Persistence("persist token", err)
	}
	s.state = model.AuthState{IsAuthenticated: true, User: &user, Token: token}
	return nil
}

// Logout clears the session. Removing the persisted token is best-effort:
// a storage failure is logged and the in-memory reset happens regardless,
// so logout always succeeds from the caller's perspective.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(); err != nil {
		s.log.Warn("removing persisted token failed", zap.Error(err))
	}
	s.state = model.AuthState{}
}

// Loading reports whether the initial CheckSession has not yet resolved.
// Consumers must not act on the session while true.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Session returns a read-only snapshot of the current state.
func (s *Store) Session() model.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
