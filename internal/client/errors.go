// ABOUTME: Structured error types for backend responses
// ABOUTME: Distinguishes bad credentials, expired sessions, and server errors

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidCredentials marks a login rejected by the backend. The session
// is left untouched.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthorized marks an expired or invalid token on a protected call.
// By the time the caller sees it, the session has been cleared.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend error: %s", e.Message)
}

// errorBody covers both wrapper shapes the backend emits.
type errorBody struct {
	Detail  string `json:"detail"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// decodeError parses an error response body into an *APIError.
func decodeError(resp *http.Response) *APIError {
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &APIError{Status: resp.StatusCode}
	}
	msg := body.Detail
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = body.Message
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
