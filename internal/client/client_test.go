// ABOUTME: Tests for the request pipeline: bearer attachment and 401 teardown
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/tbenali/captrack/internal/session"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	return session.New(session.NewMemStore())
}

func loggedIn(t *testing.T, role session.Role) *session.Session {
	t.Helper()
	s := newSession(t)
	err := s.Set("tok-abc", session.User{Email: "u@captrack.io", FullName: "U", Role: role})
	if err != nil {
		t.Fatalf("set session: %v", err)
	}
	return s
}

func TestAuthorizedRequestCarriesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Page[Sensor]{})
	}))
	defer server.Close()

	c := New(server.URL, loggedIn(t, session.RoleUser))
	if _, err := c.ListSensors(context.Background(), DefaultListQuery()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var hadHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hadHeader = r.Header.Get("Authorization") != ""
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Page[Sensor]{})
	}))
	defer server.Close()

	c := New(server.URL, newSession(t))
	if _, err := c.ListSensors(context.Background(), DefaultListQuery()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hadHeader {
		t.Error("expected no Authorization header without a token")
	}
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid or expired token"})
	}))
	defer server.Close()

	sess := loggedIn(t, session.RoleUser)
	c := New(server.URL, sess)

	var hookFired bool
	c.OnUnauthorized(func() { hookFired = true })

	_, err := c.ListSensors(context.Background(), DefaultListQuery())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("expected session cleared after 401")
	}
	if !hookFired {
		t.Error("expected unauthorized hook to fire")
	}
}

func TestForbiddenResponseClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "forbidden"})
	}))
	defer server.Close()

	sess := loggedIn(t, session.RoleUser)
	c := New(server.URL, sess)

	_, err := c.ListUsers(context.Background(), DefaultListQuery())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("expected session cleared after 403")
	}
}

func TestConcurrentUnauthorizedResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "expired"})
	}))
	defer server.Close()

	sess := loggedIn(t, session.RoleUser)
	c := New(server.URL, sess)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.ListSensors(context.Background(), DefaultListQuery())
		}()
	}
	wg.Wait()

	if sess.IsAuthenticated() {
		t.Error("expected session cleared")
	}
}

func TestServerErrorKeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	}))
	defer server.Close()

	sess := loggedIn(t, session.RoleUser)
	c := New(server.URL, sess)

	_, err := c.ListSensors(context.Background(), DefaultListQuery())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", apiErr.Status)
	}
	if apiErr.Message != "boom" {
		t.Errorf("expected message boom, got %q", apiErr.Message)
	}
	if !sess.IsAuthenticated() {
		t.Error("expected session untouched on server error")
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://localhost:99999", newSession(t))
	_, err := c.ListSensors(context.Background(), DefaultListQuery())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(Page[Sensor]{})
	}))
	defer server.Close()

	c := New(server.URL, newSession(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ListSensors(ctx, DefaultListQuery()); err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(Page[Sensor]{})
	}))
	defer server.Close()

	c := New(server.URL, newSession(t))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := c.ListSensors(ctx, DefaultListQuery()); err == nil {
		t.Error("expected error for timed out context, got nil")
	}
}

func TestListQueryValues(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		json.NewEncoder(w).Encode(Page[Sensor]{})
	}))
	defer server.Close()

	c := New(server.URL, newSession(t))
	q := ListQuery{Page: 2, Size: 25, Sort: "name,asc", Filter: "temp"}
	if _, err := c.ListSensors(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"page=2", "size=25", "sort=name%2Casc", "filter=temp"} {
		if !containsParam(got, want) {
			t.Errorf("expected query to contain %s, got %s", want, got)
		}
	}
}

func containsParam(query, param string) bool {
	for i := 0; i+len(param) <= len(query); i++ {
		if query[i:i+len(param)] == param {
			return true
		}
	}
	return false
}
