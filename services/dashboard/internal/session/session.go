// Package session owns the client's credential: where it is stored, who may read it, and the
// guard that gates protected views behind it.
package session

import (
	"fmt"
	"sync"
)

// Session is the process's single credential holder. It is created once at startup with
// Open and handed to everything that needs the token.
type Session struct {
	store Store

	mu    sync.RWMutex
	token string
}

func Open(store Store) (*Session, error) {
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return &Session{store: store, token: token}, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Set stores a freshly issued token.
func (s *Session) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(token); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Logout forgets the token. Calling it on an empty session is a no-op.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return s.store.Clear()
}
