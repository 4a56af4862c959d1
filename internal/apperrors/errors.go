// Package apperrors defines the error taxonomy shared by services and handlers.
//
// Every failure a client can cause is represented as an *Error carrying a
// Kind plus the detail payload (type, loc, msg) returned to the client.
// Anything else is an internal error and is surfaced as a plain 500.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP status mapping
type Kind int

const (
	// KindNotFound means a referenced id does not exist
	KindNotFound Kind = iota + 1
	// KindConflict means a uniqueness constraint was violated
	KindConflict
	// KindForbidden means the authenticated user lacks ownership of the resource
	KindForbidden
	// KindUnauthorized means missing/invalid token or bad credentials
	KindUnauthorized
	// KindMalformed means the request body is inconsistent with the data model
	KindMalformed
)

// Error is a client-facing error with a stable type code and location
type Error struct {
	Kind Kind   `json:"-"`
	Type string `json:"type"`
	Loc  string `json:"loc"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return e.Msg
}

// NotFound reports that an entity with the given id does not exist
func NotFound(entity string, id int) *Error {
	return &Error{
		Kind: KindNotFound,
		Type: entity + "_not_found",
		Loc:  "path",
		Msg:  fmt.Sprintf("%s with id %d not found", entity, id),
	}
}

// Conflict reports a uniqueness violation on the given field
func Conflict(typ, field, msg string) *Error {
	return &Error{
		Kind: KindConflict,
		Type: typ,
		Loc:  field,
		Msg:  msg,
	}
}

// Forbidden reports a failed ownership check
func Forbidden(msg string) *Error {
	return &Error{
		Kind: KindForbidden,
		Type: "forbidden",
		Loc:  "path",
		Msg:  msg,
	}
}

// Unauthorized reports a failed authentication
func Unauthorized(msg string) *Error {
	return &Error{
		Kind: KindUnauthorized,
		Type: "unauthorized",
		Loc:  "header",
		Msg:  msg,
	}
}

// Malformed reports a request body inconsistent with the data model
func Malformed(field, msg string) *Error {
	return &Error{
		Kind: KindMalformed,
		Type: "malformed",
		Loc:  field,
		Msg:  msg,
	}
}

// As unwraps err into an *Error, returning nil if it is not one
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
