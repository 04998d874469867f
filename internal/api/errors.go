package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// AuthError means the server rejected the credential or the session token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ValidationError carries the server's field problems. All messages are kept;
// callers display the full list, never just the first one.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NetworkError wraps a transport failure, including an open circuit breaker.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError means the referenced entity is absent on the server.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// APIError is any other non-success response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// decodeError maps a non-2xx response to the client error taxonomy.
// The server reports either {"error": "..."} or {"errors": ["...", ...]}.
func decodeError(resp *http.Response) error {
	var body struct {
		Error  string   `json:"error"`
		Errors []string `json:"errors"`
	}
	// An undecodable body degrades to the status text below.
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Message: orStatusText(body.Error, resp.StatusCode)}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Message: orStatusText(body.Error, resp.StatusCode)}
	case len(body.Errors) > 0:
		return &ValidationError{Messages: body.Errors}
	default:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    orStatusText(body.Error, resp.StatusCode),
		}
	}
}

func orStatusText(message string, statusCode int) string {
	if message != "" {
		return message
	}
	return http.StatusText(statusCode)
}
