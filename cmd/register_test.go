// ABOUTME: Tests for the register command
// ABOUTME: Registration never establishes a session

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tbenali/captrack/internal/client"
	"github.com/tbenali/captrack/internal/session"
)

func TestRegisterCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var input client.RegisterInput
		json.NewDecoder(r.Body).Decode(&input)
		if input.Role != "USER" {
			t.Errorf("expected default role USER, got %s", input.Role)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(session.User{
			Email:    input.Email,
			FullName: input.FullName,
			Role:     session.RoleUser,
		})
	}))
	defer server.Close()

	dir := useTempConfigDir(t)
	apiURL = server.URL
	defer func() { apiURL = "" }()
	registerEmail = "new@plant.example"
	registerName = "New Operator"
	registerPassword = "secret"
	defer func() { registerEmail, registerName, registerPassword = "", "", "" }()

	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Run 'captrack login' to sign in.")) {
		t.Errorf("unexpected output: %s", buf.String())
	}

	// Registration must not log the account in.
	sess := session.New(session.NewFileStore(dir))
	if err := sess.Initialize(); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("register must not store a session")
	}
}

func TestRegisterCommand_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
	}))
	defer server.Close()

	useTempConfigDir(t)
	apiURL = server.URL
	defer func() { apiURL = "" }()
	registerEmail = "dup@plant.example"
	registerName = "Dup"
	registerPassword = "secret"
	defer func() { registerEmail, registerName, registerPassword = "", "", "" }()

	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Email already registered")) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
