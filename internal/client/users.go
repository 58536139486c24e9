// ABOUTME: User administration endpoints
// ABOUTME: Admin-only on the backend; 403 responses tear the session down

package client

import (
	"context"
	"fmt"
)

// Account is a managed user record, distinct from the session's own profile.
type Account struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// ListUsers calls GET /users with pagination parameters.
func (c *Client) ListUsers(ctx context.Context, q ListQuery) (*Page[Account], error) {
	return get[Page[Account]](c, ctx, "/users", q.values())
}

// GetUser calls GET /users/{id}.
func (c *Client) GetUser(ctx context.Context, id string) (*Account, error) {
	resp, err := get[Envelope[Account]](c, ctx, "/users/"+id, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateUser calls POST /users.
func (c *Client) CreateUser(ctx context.Context, account Account) (*Account, error) {
	resp, err := post[Envelope[Account]](c, ctx, "/users", account)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateUser calls PUT /users/{id}.
func (c *Client) UpdateUser(ctx context.Context, id string, account Account) (*Account, error) {
	resp, err := put[Envelope[Account]](c, ctx, "/users/"+id, account)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteUser calls DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := del[Envelope[struct{}]](c, ctx, fmt.Sprintf("/users/%s", id))
	return err
}
