package service

import "errors"

// Error kinds. Every *Error unwraps to exactly one of them.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error is a client-safe failure: a kind plus a short human-readable message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func validation(msg string) error   { return &Error{Kind: ErrValidation, Message: msg} }
func unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }
func notFound(msg string) error     { return &Error{Kind: ErrNotFound, Message: msg} }
func conflict(msg string) error     { return &Error{Kind: ErrConflict, Message: msg} }
