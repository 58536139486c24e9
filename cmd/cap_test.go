// ABOUTME: Tests for the cap commands, chiefly defect detection
// ABOUTME: Detection uploads a real temp file and maps results to exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/tbenali/captrack/internal/client"
	"github.com/tbenali/captrack/internal/session"
)

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cap.jpg")
	if err := os.WriteFile(path, []byte("not-really-a-jpeg"), 0o600); err != nil {
		t.Fatalf("failed to write temp image: %v", err)
	}
	return path
}

func TestCapDetect_Clean(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/caps/detect" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if _, header, err := r.FormFile("file"); err != nil {
			t.Errorf("expected multipart file field: %v", err)
		} else if header.Filename != "cap.jpg" {
			t.Errorf("expected filename cap.jpg, got %s", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Envelope[client.CapDetection]{
			Data: client.CapDetection{ID: 1, IsDefective: false, Confidence: 0.97},
		})
	}))
	defer server.Close()

	dir := useTempConfigDir(t)
	seedSession(t, dir, "tok-abc", session.RoleUser)
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runCapDetect(context.Background(), &buf, writeTempImage(t))

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("OK confidence 97.0%")) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestCapDetect_Defective(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Envelope[client.CapDetection]{
			Data: client.CapDetection{ID: 2, IsDefective: true, DefectType: "CRACK", Confidence: 0.88},
		})
	}))
	defer server.Close()

	dir := useTempConfigDir(t)
	seedSession(t, dir, "tok-abc", session.RoleUser)
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runCapDetect(context.Background(), &buf, writeTempImage(t))

	if exitCode != 1 {
		t.Errorf("expected exit code 1 for a defective cap, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("DEFECTIVE (CRACK)")) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestCapDetect_MissingFile(t *testing.T) {
	useTempConfigDir(t)

	var buf bytes.Buffer
	exitCode := runCapDetect(context.Background(), &buf, "/nonexistent/cap.jpg")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("cannot open image")) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestCapHistory_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/caps/detect/history" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Page[client.CapDetection]{
			Content: []client.CapDetection{
				{ID: 3, DetectedAt: "2026-08-30T09:00:00Z", IsDefective: true, DefectType: "DENT", Confidence: 0.91},
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
	exitCode := runCapHistory(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	for _, want := range []string{"DENT", "Page 1 of 1 (1 detections)"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected %q in output: %s", want, buf.String())
		}
	}
}
