package api

import (
	"context"
	"fmt"
	"net/http"
)

// Profile fetches the user record for the current token.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type profileUpdatePayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateProfile changes the current user's name fields. Email is immutable
// post-creation and is not sent.
func (c *Client) UpdateProfile(ctx context.Context, firstName, lastName string) (*User, error) {
	body := struct {
		User profileUpdatePayload `json:"user"`
	}{User: profileUpdatePayload{FirstName: firstName, LastName: lastName}}

	var out User
	if err := c.do(ctx, http.MethodPatch, "/users/profile", nil, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserUpdate is the admin-side editable field set.
type UserUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// ListUsers returns every user record (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser edits a user record (admin only).
func (c *Client) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*User, error) {
	body := struct {
		User UserUpdate `json:"user"`
	}{User: update}

	var out User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", id), nil, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user record (admin only).
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil, nil)
}
