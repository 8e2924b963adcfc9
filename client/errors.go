package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoToken is returned by protected operations before login.
	ErrNoToken = errors.New("no auth token set")

	// ErrUnauthorized means the server rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the acting identity is not the post's author.
	ErrForbidden = errors.New("forbidden")

	// ErrPostNotFound means the post id is stale or never existed.
	ErrPostNotFound = errors.New("post not found")

	// ErrUserNotFound means no user with that username exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists means the username is already registered.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials means a bad username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRequest means the server rejected the payload.
	ErrInvalidRequest = errors.New("invalid request")
)

// StatusError carries an unexpected HTTP status and the server-provided
// message.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// statusError maps a non-2xx response to a client error, keeping the
// server-provided message for the unexpected cases.
func statusError(status int, message string) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusConflict:
		return ErrUserExists
	case http.StatusBadRequest:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, message)
		}
		return ErrInvalidRequest
	default:
		return &StatusError{Code: status, Message: message}
	}
}

// isStatus reports whether err is a StatusError with the given code.
func isStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
