// internal/game/session.go
//
// Session owns one game's State and serializes access to it.
// The terminal client drives it from a single goroutine; HTTP and
// websocket handlers may touch the same session concurrently, so every
// transition goes through the mutex.

package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is a mutex-guarded holder for a State.
type Session struct {
	id      string
	created time.Time

	mu      sync.Mutex // guards state and touched
	state   State
	touched time.Time
}

// NewSession creates a session with a fresh state and a random ID.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		id:      uuid.NewString(),
		created: now,
		state:   NewState(),
		touched: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Created returns the creation time.
func (s *Session) Created() time.Time { return s.created }

// LastActive returns when the session was created or last received a key.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// Press applies one key and returns the resulting state.
func (s *Session) Press(k Key) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Apply(s.state, k)
	s.touched = time.Now()
	return s.state
}

// SetSolution resolves the session's solution. See Resolve.
func (s *Session) SetSolution(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := Resolve(s.state, word)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
