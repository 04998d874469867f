package api

import (
	"context"
	"net/http"
)

type credentialsPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type userEnvelope struct {
	User credentialsPayload `json:"user"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// SignIn exchanges credentials for a bearer token.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	body := userEnvelope{User: credentialsPayload{Email: email, Password: password}}
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/users/sign_in", nil, nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates an account and returns its token. Validation failures come
// back as a ValidationError with every server message intact.
func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	body := userEnvelope{User: credentialsPayload{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	}}
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/users", nil, nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// SignOut invalidates the token server-side. Callers may discard the error;
// local session cleanup never depends on it.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/users/sign_out", nil, nil, nil, nil)
}
