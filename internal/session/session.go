// Package session holds the identity of the authenticated user.
//
// The session lives exactly as long as the process: it starts
// unauthenticated, is set on a successful login, and is cleared on logout.
// Restarting the client returns the user to an unauthenticated view even if
// the server-side session cookie is still valid.
package session

import "sync"

// Session is an explicit application-level holder for the current user,
// constructed once and passed down to the components that read it.
type Session struct {
	mu       sync.RWMutex
	username string
}

// New returns an unauthenticated session.
func New() *Session {
	return &Session{}
}

// Login records the username returned by the backend.
func (s *Session) Login(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
}

// Logout clears the session unconditionally.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
}

// CurrentUser returns the authenticated username and whether one is set.
func (s *Session) CurrentUser() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, s.username != ""
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}
