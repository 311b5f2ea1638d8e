// Package common defines shared constants and sentinel errors used across
// client and server layers of the dispatch module. Callers should use
// errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")
	ErrParse       = errors.New("unexpected response body")

	// Rejection kinds recognized in non-2xx server responses.
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")

	// Client-side guards. A precondition failure must never reach the network.
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrAlreadySubmitted   = fmt.Errorf("%w: request already submitted", ErrPreconditionFailed)
	ErrEmptyFields        = fmt.Errorf("%w: request needs at least one file and one recipient", ErrPreconditionFailed)
	ErrDeleteNotAllowed   = fmt.Errorf("%w: submitted requests cannot be deleted", ErrPreconditionFailed)
	ErrNameRequired       = fmt.Errorf("%w: subject must not be empty", ErrPreconditionFailed)
	ErrRecipientLocked    = fmt.Errorf("%w: person-linked recipients cannot be edited", ErrPreconditionFailed)

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// RejectedError carries a non-2xx server response. It matches the sentinel
// rejection kinds above through errors.Is, so callers can branch on the
// well-known statuses without inspecting the code themselves.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("server rejected request: status %d", e.Status)
}

func (e *RejectedError) Is(target error) bool {
	switch target {
	case ErrPermissionDenied:
		return e.Status == 403
	case ErrNotFound:
		return e.Status == 404
	case ErrValidation:
		return e.Status == 400 || e.Status == 422
	}
	return false
}
