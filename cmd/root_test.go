// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tbenali/captrack/internal/session"
)

func TestGetAPIURL_Default(t *testing.T) {
	os.Unsetenv("CAPTRACK_API_URL")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != "http://localhost:8080" {
		t.Errorf("expected default URL http://localhost:8080, got %s", url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	os.Setenv("CAPTRACK_API_URL", "http://backend.example.com")
	defer os.Unsetenv("CAPTRACK_API_URL")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	os.Setenv("CAPTRACK_API_URL", "http://backend.example.com")
	defer os.Unsetenv("CAPTRACK_API_URL")
	apiURL = "http://flag-override.example.com"
	defer func() { apiURL = "" }()

	url := GetAPIURL()
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestConfigDir_FromEnv(t *testing.T) {
	os.Setenv("CAPTRACK_CONFIG_DIR", "/tmp/captrack-test")
	defer os.Unsetenv("CAPTRACK_CONFIG_DIR")

	if dir := ConfigDir(); dir != "/tmp/captrack-test" {
		t.Errorf("expected env override, got %s", dir)
	}
}

func TestNewEnv_RestoresSession(t *testing.T) {
	dir := useTempConfigDir(t)
	seedSession(t, dir, "tok-abc", session.RoleAdmin)

	var buf bytes.Buffer
	e, err := newEnv(&buf)
	if err != nil {
		t.Fatalf("newEnv failed: %v", err)
	}

	if !e.sess.IsAuthenticated() {
		t.Error("expected session restored from disk")
	}
	if e.sess.Token() != "tok-abc" {
		t.Errorf("expected token tok-abc, got %s", e.sess.Token())
	}
}

// useTempConfigDir points the config dir env at a fresh temp directory.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	os.Setenv("CAPTRACK_CONFIG_DIR", dir)
	t.Cleanup(func() { os.Unsetenv("CAPTRACK_CONFIG_DIR") })
	return dir
}

// seedSession writes a logged-in session into the given config dir.
func seedSession(t *testing.T, dir, token string, role session.Role) {
	t.Helper()
	store := session.NewFileStore(dir)
	sess := session.New(store)
	if err := sess.Set(token, session.User{
		Email:    "op@plant.example",
		FullName: "Plant Operator",
		Phone:    "+31600000001",
		Role:     role,
	}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "auth_token")); err != nil {
		t.Fatalf("seeded session not on disk: %v", err)
	}
}
