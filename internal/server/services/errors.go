package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ticketledger/internal/common"
)

// Every error below wraps one kind from package common; match with errors.Is.
var (
	ErrNotRegistered     = fmt.Errorf("%w: caller is not registered", common.ErrorUnauthenticated)
	ErrAlreadyRegistered = fmt.Errorf("%w: caller is already registered", common.ErrorConflict)
	ErrEmptyName         = fmt.Errorf("%w: name must not be empty", common.ErrorInvalidInput)
	ErrUnknownRole       = fmt.Errorf("%w: unknown role", common.ErrorInvalidInput)

	ErrNotOrganizer   = fmt.Errorf("%w: caller is not an organizer", common.ErrorForbidden)
	ErrNotParticipant = fmt.Errorf("%w: caller is not a participant", common.ErrorForbidden)

	ErrEmptyLocation     = fmt.Errorf("%w: location must not be empty", common.ErrorInvalidInput)
	ErrDateNotInFuture   = fmt.Errorf("%w: event date must be in the future", common.ErrorInvalidInput)
	ErrEventNotFound     = fmt.Errorf("%w: event not found", common.ErrorNotFound)
	ErrNotEventOrganizer = fmt.Errorf("%w: caller does not organize this event", common.ErrorForbidden)
	ErrEventStarted      = fmt.Errorf("%w: event already started", common.ErrorInvalidState)

	ErrInvalidQuantity   = fmt.Errorf("%w: quantity must be positive", common.ErrorInvalidInput)
	ErrBatchTooLarge     = fmt.Errorf("%w: quantity exceeds batch limit", common.ErrorInvalidInput)
	ErrInvalidPrice      = fmt.Errorf("%w: price must be positive", common.ErrorInvalidInput)
	ErrUnknownTicketRole = fmt.Errorf("%w: unknown ticket role", common.ErrorInvalidInput)

	ErrTicketNotFound = fmt.Errorf("%w: ticket not found", common.ErrorNotFound)
	ErrPriceMismatch  = fmt.Errorf("%w: payment must equal the ticket price", common.ErrorInvalidInput)
	// ErrTicketAlreadySold is both a conflict and a state error.
	ErrTicketAlreadySold = fmt.Errorf("ticket already sold (%w, %w)", common.ErrorConflict, common.ErrorInvalidState)

	ErrRecipientNotFound       = fmt.Errorf("%w: recipient is not registered", common.ErrorNotFound)
	ErrRecipientNotParticipant = fmt.Errorf("%w: recipient is not a participant", common.ErrorForbidden)
	ErrSelfTransfer            = fmt.Errorf("%w: cannot transfer to self", common.ErrorInvalidInput)
	ErrNotOwner                = fmt.Errorf("%w: not the owner", common.ErrorForbidden)
)

// storageErr tags an unexpected repository failure as internal, keeping
// conflicts (which the storage layer reports for lost races) as they are.
func storageErr(op string, err error) error {
	if errors.Is(err, common.ErrorConflict) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, common.ErrorInternal, err)
}
