// ABOUTME: Navigation guards evaluated before a screen change commits
// ABOUTME: Pure snapshot reads of session state, no network calls

package guard

import (
	"github.com/tbenali/captrack/internal/alert"
	"github.com/tbenali/captrack/internal/session"
)

// AccessDeniedMessage is published when a non-admin hits an admin screen.
const AccessDeniedMessage = "Access denied. Admin privileges required."

// Authenticated allows navigation iff a session token is present.
func Authenticated(sess *session.Session) bool {
	return sess.IsAuthenticated()
}

// Admin allows navigation iff the session carries the ADMIN role. On denial
// it publishes an error alert; the caller redirects to the default landing
// screen and must not render the guarded view.
func Admin(sess *session.Session, bus *alert.Bus) bool {
	if sess.IsAdmin() {
		return true
	}
	bus.Error(AccessDeniedMessage)
	return false
}
