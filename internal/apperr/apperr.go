// Package apperr classifies application failures so handlers can map them
// to HTTP responses without inspecting driver errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the failure category.
type Kind int

const (
	// Validation covers malformed or missing form input.
	Validation Kind = iota
	// Authentication covers bad credentials.
	Authentication
	// Authorization covers a valid identity acting outside its rights.
	Authorization
	// NotFound covers lookups of missing rows.
	NotFound
	// Conflict covers uniqueness violations, e.g. a duplicate email.
	Conflict
	// Store covers connectivity or query failures. Details are logged,
	// never shown to the client.
	Store
)

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a client-safe message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap classifies an underlying error, keeping it for logs and errors.Is.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or Store for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Store
}

// Status maps an error to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns a message safe to show the client. Store errors collapse
// to a generic message.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Store {
		return e.Msg
	}
	return "something went wrong, please try again"
}
