package ui

import (
	"taskflow/pkg/session"
)

// GuardState gates the protected screens on session presence.
type GuardState int

const (
	// GuardChecking means the session store is still restoring; render
	// a neutral pending frame, neither content nor a login redirect.
	GuardChecking GuardState = iota
	GuardAuthenticated
	GuardUnauthenticated
)

// EvaluateGuard derives the guard state from the session store. It is
// re-run on every session change, so a logout from inside a protected
// screen flips the guard immediately.
func EvaluateGuard(s *session.Store) GuardState {
	if s.Loading() {
		return GuardChecking
	}
	if s.Authenticated() {
		return GuardAuthenticated
	}
	return GuardUnauthenticated
}

// protectedScreen reports whether a screen requires authentication.
func protectedScreen(s Screen) bool {
	switch s {
	case LoginScreen, RegisterScreen:
		return false
	}
	return true
}
