// Package service implements the blog and contact stores: input
// validation, normalisation and visibility rules on top of the SQL
// repositories, plus the mail notification that follows a contact
// submission.
package service

import (
	"errors"

	"github.com/wizonweb/wizon-server/internal/repository"
)

var (
	// ErrValidation marks caller-fixable input problems (HTTP 400).
	ErrValidation = errors.New("validation failed")
	// ErrInvalidID is returned when an id is not a well-formed UUID (HTTP 400).
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound is returned when the entity does not exist or is not
	// visible to the caller (HTTP 404).
	ErrNotFound = repository.ErrNotFound
	// ErrMailDelivery is returned when the notifier fails.  The contact has
	// already been stored when this happens.
	ErrMailDelivery = errors.New("mail delivery failed")
)

// ValidationError carries the user-facing reason for rejecting input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }
