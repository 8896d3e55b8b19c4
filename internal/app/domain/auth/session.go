package auth

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// State is a point-in-time view of a Session.
type State struct {
	Authenticated bool
	Admin         bool
	Identity      Identity
	Generation    uint64
}

// Session is the single source of truth for who is signed in and with which role.
// It is mutated only through Login and Logout; IsAuthenticated and IsAdmin are
// always derived from the current identity.
type Session struct {
	store   CredentialStore
	decoder Decoder
	logger  *zap.Logger

	mu          sync.RWMutex
	credential  string
	identity    *Identity
	generation  uint64
	subscribers map[uint64]func(State)
	nextSubID   uint64
}

// NewSession restores a previously persisted credential from store. A credential
// that no longer decodes is removed and the session starts empty without error.
func NewSession(store CredentialStore, decoder Decoder, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		store:       store,
		decoder:     decoder,
		logger:      logger,
		subscribers: make(map[uint64]func(State)),
	}
	s.restore()
	return s
}

func (s *Session) restore() {
	raw, ok := s.store.Load()
	if !ok {
		return
	}

	id, err := s.decoder.Decode(raw)
	if err != nil {
		s.logger.Debug("Discarding stored credential", zap.Error(err))
		if rmErr := s.store.Remove(); rmErr != nil {
			s.logger.Warn("Failed to remove stored credential", zap.Error(rmErr))
		}
		return
	}

	s.credential = raw
	s.identity = &id
}

// Login decodes and persists raw. On failure the session is left untouched.
// The store is written under the session lock so it never disagrees with memory.
func (s *Session) Login(raw string) error {
	id, err := s.decoder.Decode(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.store.Save(raw); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	s.credential = raw
	s.identity = &id
	s.generation++
	st := s.stateLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	s.logger.Debug("Session started",
		zap.String("subject", id.Subject),
		zap.String("role", string(id.Role)))
	notify(subs, st)
	return nil
}

// Logout clears the session and its persisted copy. Calling it while already
// logged out changes nothing. Stores are not safe for concurrent use, so the
// removal happens under the session lock.
func (s *Session) Logout() {
	s.mu.Lock()
	if err := s.store.Remove(); err != nil {
		s.logger.Warn("Failed to remove stored credential", zap.Error(err))
	}
	if s.identity == nil && s.credential == "" {
		s.mu.Unlock()
		return
	}
	s.credential = ""
	s.identity = nil
	s.generation++
	st := s.stateLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	s.logger.Debug("Session cleared")
	notify(subs, st)
}

func (s *Session) Credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential, s.credential != ""
}

func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) IsAuthenticated() bool {
	return s.State().Authenticated
}

func (s *Session) IsAdmin() bool {
	return s.State().Admin
}

// Generation increases on every Login and on every Logout that cleared state.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// CredentialSource adapts the session for the backend client.
func (s *Session) CredentialSource() func(context.Context) (string, bool) {
	return func(context.Context) (string, bool) {
		return s.Credential()
	}
}

// Subscribe registers fn to be called synchronously after every state change.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.subscribeLocked(fn)
	s.mu.Unlock()
	return func() { s.unsubscribe(id) }
}

// Bind returns a context that is cancelled as soon as the session changes hands,
// so work started under one login cannot land after a logout.
func (s *Session) Bind(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	gen := s.generation
	id := s.subscribeLocked(func(st State) {
		if st.Generation != gen {
			cancel()
		}
	})
	s.mu.Unlock()

	return ctx, func() {
		s.unsubscribe(id)
		cancel()
	}
}

func (s *Session) subscribeLocked(fn func(State)) uint64 {
	s.nextSubID++
	s.subscribers[s.nextSubID] = fn
	return s.nextSubID
}

func (s *Session) unsubscribe(id uint64) {
	s.mu.Lock()
	delete(s.subscribers, id)
	s.mu.Unlock()
}

func (s *Session) stateLocked() State {
	st := State{Generation: s.generation}
	if s.identity != nil {
		st.Authenticated = true
		st.Admin = s.identity.Role == RoleAdmin
		st.Identity = *s.identity
	}
	return st
}

func (s *Session) subscribersLocked() []func(State) {
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}
