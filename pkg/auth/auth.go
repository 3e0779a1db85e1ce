// Package auth provides the two gates the builder needs: an anonymous
// session handle required before any store write, and the shared
// passphrase that unlocks the builder overlay and dashboard.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/verolabs/vero/pkg/page"
	"github.com/verolabs/vero/pkg/store"
)

// Auth errors.
var (
	// ErrBadPassphrase is returned on a mismatch. Surfaced inline;
	// there is no lockout and no attempt counter.
	ErrBadPassphrase = errors.New("incorrect passphrase")

	// ErrNoPassphrase means setup has not happened yet.
	ErrNoPassphrase = errors.New("no passphrase configured")

	// ErrPassphraseTooShort rejects setup passphrases under 6 chars.
	ErrPassphraseTooShort = errors.New("passphrase must be at least 6 characters")
)

// Session is an opaque anonymous identity. It gates writes the way the
// original's anonymous sign-in did: its only meaning is "a session is
// present", there is no authorization model behind it.
type Session struct {
	ID string
}

// Sessions hands out and tracks anonymous sessions.
type Sessions struct {
	mu     sync.RWMutex
	active map[string]Session
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{active: make(map[string]Session)}
}

// Anonymous establishes a new anonymous session.
func (s *Sessions) Anonymous() Session {
	sess := Session{ID: uuid.NewString()}
	s.mu.Lock()
	s.active[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Drop forgets a session.
func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()
}

// Gate checks candidate passphrases against the stored admin settings.
//
// The passphrase is stored and compared in plaintext with no hashing
// and no rate limiting, faithfully reproducing the system this
// replaces. A documented security gap, not an accident.
type Gate struct {
	catalog *store.Catalog
}

// NewGate creates a passphrase gate over the catalog.
func NewGate(c *store.Catalog) *Gate {
	return &Gate{catalog: c}
}

// Configured reports whether a passphrase has been set up.
func (g *Gate) Configured(ctx context.Context) (bool, error) {
	s, err := g.catalog.GetSettings(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.Passphrase != "", nil
}

// Check compares input against the stored passphrase.
func (g *Gate) Check(ctx context.Context, input string) error {
	s, err := g.catalog.GetSettings(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoPassphrase
	}
	if err != nil {
		return err
	}
	if s.Passphrase == "" {
		return ErrNoPassphrase
	}
	if s.Passphrase != input {
		return ErrBadPassphrase
	}
	return nil
}

// Setup stores the initial passphrase. Only valid while none is
// configured; after that, changing it is out of scope.
func (g *Gate) Setup(ctx context.Context, passphrase string) error {
	if len(passphrase) < 6 {
		return ErrPassphraseTooShort
	}
	configured, err := g.Configured(ctx)
	if err != nil {
		return err
	}
	if configured {
		return errors.New("passphrase already configured")
	}
	return g.catalog.PutSettings(ctx, page.Settings{Passphrase: passphrase})
}
