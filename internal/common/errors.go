// Package common defines shared constants and sentinel errors used across
// client and server layers of ticketledger. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by the services wraps exactly one of
// these (a sold ticket wraps two, see services.ErrTicketAlreadySold).
var (
	// ErrorUnauthenticated: no registered user behind the caller identity.
	ErrorUnauthenticated = errors.New("unauthenticated")
	// ErrorForbidden: wrong role or not the owner of the resource.
	ErrorForbidden = errors.New("forbidden")
	// ErrorNotFound: referenced entity is absent.
	ErrorNotFound = errors.New("not found")
	// ErrorInvalidInput: malformed or out-of-range payload.
	ErrorInvalidInput = errors.New("invalid input")
	// ErrorInvalidState: operation not valid for the entity's current state.
	ErrorInvalidState = errors.New("invalid state")
	// ErrorConflict: uniqueness violation.
	ErrorConflict = errors.New("conflict")
	// ErrorInternal: unexpected storage or infrastructure failure.
	ErrorInternal = errors.New("internal error")
)

var (
	// Auth errors (invalid or malformed token). Both are unauthenticated.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrorUnauthenticated)
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrorUnauthenticated)
)

var kinds = []error{
	ErrorUnauthenticated,
	ErrorForbidden,
	ErrorNotFound,
	ErrorInvalidInput,
	ErrorInvalidState,
	ErrorConflict,
	ErrorInternal,
}

// KindOf returns the first kind err matches, in the order the kinds are
// declared above, or ErrorInternal if it matches none. An error carrying
// both InvalidState and Conflict therefore reports InvalidState.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrorInternal
}
