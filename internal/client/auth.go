// ABOUTME: Authentication endpoints: login, register, current profile
// ABOUTME: Login writes the session; register deliberately does not

package client

import (
	"context"
	"fmt"

	"github.com/tbenali/captrack/internal/session"
)

// AuthResponse is the POST /auth/login payload.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
}

// RegisterInput is the POST /auth/register request body.
type RegisterInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ProfileUpdate is the PUT /auth/me request body. Empty fields are omitted
// and left unchanged by the backend.
type ProfileUpdate struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

// Login authenticates against the backend and, on success, establishes the
// session. A rejected login wraps ErrInvalidCredentials and leaves the
// session untouched.
func (c *Client) Login(ctx context.Context, email, password string) (*session.User, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := postPublic[AuthResponse](c, ctx, "/auth/login", body)
	if err != nil {
		return nil, err
	}

	user := session.User{
		Email:    resp.Email,
		FullName: resp.FullName,
		Phone:    resp.Phone,
		Role:     session.ParseRole(resp.Role),
	}
	if err := c.session.Set(resp.AccessToken, user); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &user, nil
}

// Register creates a new account. The caller is not authenticated by a
// successful registration; the account must log in separately.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*session.User, error) {
	if input.Role == "" {
		input.Role = string(session.RoleUser)
	}
	resp, err := postPublic[session.User](c, ctx, "/auth/register", input)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Me fetches the authenticated profile from the backend.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	return get[session.User](c, ctx, "/auth/me", nil)
}

// UpdateProfile pushes profile changes to the backend, then applies the new
// display name to the local session so both stay in step.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*session.User, error) {
	resp, err := put[session.User](c, ctx, "/auth/me", update)
	if err != nil {
		return nil, err
	}
	if update.FullName != "" {
		if err := c.session.UpdateProfile(update.FullName); err != nil {
			return nil, fmt.Errorf("failed to persist profile: %w", err)
		}
	}
	return resp, nil
}
