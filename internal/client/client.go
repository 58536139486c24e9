// ABOUTME: HTTP client for the CapTrack monitoring backend
// ABOUTME: Every request runs through an explicit authorize/send/check pipeline

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tbenali/captrack/internal/session"
)

// Client is the API client for the CapTrack backend. All resource calls
// attach the session's bearer token before transmission; a 401/403 response
// tears the session down and fires the unauthorized hook before the error
// is returned to the caller.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *session.Session
	onUnauthorized func()
}

// New creates a new API client bound to the given session.
func New(baseURL string, sess *session.Session) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: sess,
	}
}

// OnUnauthorized registers the hook invoked after an authorization-failure
// teardown, typically the app's redirect to the login screen.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Envelope is the backend's single-entity response wrapper.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Page is the backend's paginated list wrapper.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

// ListQuery carries the standard pagination parameters for list endpoints.
type ListQuery struct {
	Page   int
	Size   int
	Sort   string
	Filter string
}

// DefaultListQuery matches the backend's defaults.
func DefaultListQuery() ListQuery {
	return ListQuery{Page: 0, Size: 10, Sort: "id,desc"}
}

// values encodes the query, omitting an empty filter.
func (q ListQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	v.Set("sort", q.Sort)
	if q.Filter != "" {
		v.Set("filter", q.Filter)
	}
	return v
}

// get runs an authorized GET and decodes the response into T.
func get[T any](c *Client, ctx context.Context, path string, query url.Values) (*T, error) {
	return roundTrip[T](c, ctx, http.MethodGet, path, query, nil, true)
}

// post runs an authorized POST with a JSON body.
func post[T any](c *Client, ctx context.Context, path string, body any) (*T, error) {
	return roundTrip[T](c, ctx, http.MethodPost, path, nil, body, true)
}

// put runs an authorized PUT with a JSON body.
func put[T any](c *Client, ctx context.Context, path string, body any) (*T, error) {
	return roundTrip[T](c, ctx, http.MethodPut, path, nil, body, true)
}

// del runs an authorized DELETE.
func del[T any](c *Client, ctx context.Context, path string) (*T, error) {
	return roundTrip[T](c, ctx, http.MethodDelete, path, nil, nil, true)
}

// postPublic runs an unauthenticated POST; authorization failures are
// reported to the caller without touching the session.
func postPublic[T any](c *Client, ctx context.Context, path string, body any) (*T, error) {
	return roundTrip[T](c, ctx, http.MethodPost, path, nil, body, false)
}

// roundTrip is the request pipeline: build, authorize, send, check, decode.
// Requests are never mutated after transmission starts.
func roundTrip[T any](c *Client, ctx context.Context, method, path string, query url.Values, body any, protected bool) (*T, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.requestError(ctx, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, protected); err != nil {
		return nil, err
	}

	return decodeBody[T](resp)
}

// send runs a pre-built request through the authorize/check stages. Used by
// callers that need a non-JSON body, such as multipart uploads.
func send[T any](c *Client, ctx context.Context, req *http.Request, protected bool) (*T, error) {
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.requestError(ctx, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, protected); err != nil {
		return nil, err
	}

	return decodeBody[T](resp)
}

// decodeBody unmarshals a successful response. Deletes answer 204 No Content
// with an empty body, so those decode to the zero value.
func decodeBody[T any](resp *http.Response) (*T, error) {
	var out T
	if resp.StatusCode == http.StatusNoContent {
		return &out, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return &out, nil
		}
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &out, nil
}

// authorize attaches the current bearer token, if any.
func (c *Client) authorize(req *http.Request) {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// checkStatus maps non-2xx responses to structured errors. For protected
// calls a 401/403 clears the session (idempotent, so concurrent failures
// are safe) and fires the unauthorized hook before the error propagates.
func (c *Client) checkStatus(resp *http.Response, protected bool) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := decodeError(resp)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if protected {
			// Teardown first, then surface the original error.
			c.session.Clear()
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
			return fmt.Errorf("%w: %v", ErrUnauthorized, apiErr)
		}
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, apiErr)
	}

	return apiErr
}

// requestError converts transport errors to user-friendly messages.
func (c *Client) requestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}
