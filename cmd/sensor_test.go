// ABOUTME: Tests for the sensor commands
// ABOUTME: Verifies table output, pagination footer, and exit codes

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

func TestSensorList_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sensors" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Page[client.Sensor]{
			Content: []client.Sensor{
				{ID: 7, Name: "line-3-temp", Type: "TEMPERATURE", Location: "Hall B", Status: "ACTIVE", Value: 21.5, Unit: "C"},
			},
			TotalElements: 1,
			TotalPages:    1,
			Size:          10,
			Number:        0,
		})
	}))
	defer server.Close()

	dir := useTempConfigDir(t)
	seedSession(t, dir, "tok-abc", session.RoleUser)
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runSensorList(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	for _, want := range []string{"line-3-temp", "TEMPERATURE", "Page 1 of 1 (1 sensors)"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected %q in output: %s", want, buf.String())
		}
	}
}

func TestSensorSummary_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sensors/summary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.SensorSummary{Total: 12, Active: 9, Inactive: 2, Maintenance: 1})
	}))
	defer server.Close()

	dir := useTempConfigDir(t)
	seedSession(t, dir, "tok-abc", session.RoleUser)
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runSensorSummary(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Active:      9")) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestSensorGet_InvalidID(t *testing.T) {
	useTempConfigDir(t)

	var buf bytes.Buffer
	exitCode := runSensorGet(context.Background(), &buf, "not-a-number")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("invalid id")) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestSensorDelete_SessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Token expired"})
	}))
	defer server.Close()

	dir := useTempConfigDir(t)
	seedSession(t, dir, "tok-old", session.RoleUser)
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runSensorDelete(context.Background(), &buf, "7")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Session expired. Run 'captrack login' to sign in again.")) {
		t.Errorf("expected expiry notice: %s", buf.String())
	}

	// The stored session is gone after the 401.
	sess := session.New(session.NewFileStore(dir))
	if err := sess.Initialize(); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("expected session cleared after 401")
	}
}
