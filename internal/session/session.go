// Package session holds the authenticated identity and credential for the
// lifetime of a login.
//
// The browser version of this client kept the token and user record in
// localStorage under fixed keys and read them ambiently from every view.
// Here the same state lives behind an explicit Store that is injected into
// the API client, the gate, and the views — nothing reads session state
// except through this interface.
//
// Two implementations exist: Memory (ephemeral, used in tests) and
// sqlite.Store (persistent across process restarts, the localStorage
// equivalent).
package session

import (
	"sync"

	"github.com/sakif/devconnect/internal/model"
)

// Session is the credential plus the user record the backend returned with
// it. Token is opaque to the client: there is no expiry or refresh logic,
// it is trusted until the backend answers 401.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Store persists at most one session. Set and Clear are atomic from the
// caller's perspective: a reader sees either the whole new session or none.
type Store interface {
	// Set replaces the stored session.
	Set(token string, user model.User) error

	// Get returns the stored session, or ok=false when logged out.
	Get() (Session, bool, error)

	// Clear removes the session. Clearing an empty store is not an error.
	Clear() error
}

// IsAuthenticated reports whether s holds a token. A read error counts as
// not authenticated; the gate must deny, never fail.
func IsAuthenticated(s Store) bool {
	sess, ok, err := s.Get()
	return err == nil && ok && sess.Token != ""
}

// IsAdmin reports whether s holds a token for an admin user.
func IsAdmin(s Store) bool {
	sess, ok, err := s.Get()
	return err == nil && ok && sess.Token != "" && sess.User.IsAdmin
}

// Memory is an in-process Store. Writes happen only at login and logout,
// reads happen everywhere, so a plain RWMutex is enough.
type Memory struct {
	mu   sync.RWMutex
	sess *Session
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Set(token string, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = &Session{Token: token, User: user}
	return nil
}

func (m *Memory) Get() (Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.sess == nil {
		return Session{}, false, nil
	}
	return *m.sess, true, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
