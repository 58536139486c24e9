// ABOUTME: Tests for the logout command
// ABOUTME: Logout discards the stored session and is idempotent

package cmd

import (
	"bytes"
	"testing"

	"github.com/tbenali/captrack/internal/session"
)

func TestLogout_ClearsStoredSession(t *testing.T) {
	dir := useTempConfigDir(t)
	seedSession(t, dir, "tok-abc", session.RoleUser)

	var buf bytes.Buffer
	exitCode := runLogout(&buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	sess := session.New(session.NewFileStore(dir))
	if err := sess.Initialize(); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("expected session cleared on disk")
	}
}

func TestLogout_AlreadyLoggedOut(t *testing.T) {
	useTempConfigDir(t)

	var buf bytes.Buffer
	if exitCode := runLogout(&buf); exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
}
