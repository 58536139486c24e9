// ABOUTME: Tests for the user administration commands
// ABOUTME: Verifies table output and the delete confirmation line

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

func TestUserList_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Page[client.Account]{
			Content: []client.Account{
				{ID: "u1", Email: "ada@plant.example", FullName: "Ada Admin", Role: "ADMIN"},
				{ID: "u2", Email: "uri@plant.example", FullName: "Uri User", Role: "USER"},
			},
			TotalElements: 2,
			TotalPages:    1,
			Size:          10,
			Number:        0,
		})
	}))
	defer server.Close()

	dir := useTempConfigDir(t)
	seedSession(t, dir, "tok-abc", session.RoleAdmin)
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runUserList(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	for _, want := range []string{"ada@plant.example", "Uri User", "Page 1 of 1 (2 users)"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected %q in output: %s", want, buf.String())
		}
	}
}

func TestUserDelete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/users/u2" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	dir := useTempConfigDir(t)
	seedSession(t, dir, "tok-abc", session.RoleAdmin)
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runUserDelete(context.Background(), &buf, "u2")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("User u2 deleted.")) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
