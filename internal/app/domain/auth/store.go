package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-contrib/sessions"
)

// CredentialKey is the single persisted key holding the raw bearer credential.
const CredentialKey = "authToken"

// CredentialStore is durable client-side storage for the raw credential.
// Absence means logged out.
type CredentialStore interface {
	Load() (string, bool)
	Save(raw string) error
	Remove() error
}

// CookieStore keeps the credential in the browser's signed session cookie.
type CookieStore struct {
	session sessions.Session
}

var _ CredentialStore = (*CookieStore)(nil)

func NewCookieStore(s sessions.Session) *CookieStore {
	return &CookieStore{session: s}
}

func (s *CookieStore) Load() (string, bool) {
	raw, ok := s.session.Get(CredentialKey).(string)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

func (s *CookieStore) Save(raw string) error {
	s.session.Set(CredentialKey, raw)
	if err := s.session.Save(); err != nil {
		return fmt.Errorf("failed to save session cookie: %w", err)
	}
	return nil
}

func (s *CookieStore) Remove() error {
	if s.session.Get(CredentialKey) == nil {
		return nil
	}
	s.session.Delete(CredentialKey)
	if err := s.session.Save(); err != nil {
		return fmt.Errorf("failed to clear session cookie: %w", err)
	}
	return nil
}

// MemoryStore is a process-local store.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

var _ CredentialStore = (*MemoryStore)(nil)

func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{value: initial}
}

func (s *MemoryStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.value != ""
}

func (s *MemoryStore) Save(raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = raw
	return nil
}

func (s *MemoryStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	return nil
}

// FileStore persists the credential in a file readable only by the owner.
type FileStore struct {
	path string
}

var _ CredentialStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	raw := strings.TrimSpace(string(data))
	return raw, raw != ""
}

func (s *FileStore) Save(raw string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(raw), 0o600); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}
	return nil
}

func (s *FileStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credential: %w", err)
	}
	return nil
}
