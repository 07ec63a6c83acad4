package services

import (
	"errors"

	"github.com/dmitrijs2005/ticketledger/internal/common"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrNotRegistered, "not_registered"},
	{ErrAlreadyRegistered, "already_registered"},
	{ErrEmptyName, "name_required"},
	{ErrUnknownRole, "unknown_role"},
	{ErrNotOrganizer, "not_organizer"},
	{ErrNotParticipant, "not_participant"},
	{ErrEmptyLocation, "location_required"},
	{ErrDateNotInFuture, "date_not_in_future"},
	{ErrEventNotFound, "event_not_found"},
	{ErrNotEventOrganizer, "not_event_organizer"},
	{ErrEventStarted, "event_started"},
	{ErrInvalidQuantity, "invalid_quantity"},
	{ErrBatchTooLarge, "batch_too_large"},
	{ErrInvalidPrice, "invalid_price"},
	{ErrUnknownTicketRole, "unknown_ticket_role"},
	{ErrTicketNotFound, "ticket_not_found"},
	{ErrPriceMismatch, "price_mismatch"},
	{ErrTicketAlreadySold, "ticket_already_sold"},
	{ErrRecipientNotFound, "recipient_not_found"},
	{ErrRecipientNotParticipant, "recipient_not_participant"},
	{ErrSelfTransfer, "self_transfer"},
	{ErrNotOwner, "not_owner"},

	{common.ErrTokenExpired, "token_expired"},
	{common.ErrInvalidToken, "invalid_token"},
}

var kindCodes = map[error]string{
	common.ErrorUnauthenticated: "unauthenticated",
	common.ErrorForbidden:       "forbidden",
	common.ErrorNotFound:        "not_found",
	common.ErrorInvalidInput:    "invalid_input",
	common.ErrorInvalidState:    "invalid_state",
	common.ErrorConflict:        "conflict",
	common.ErrorInternal:        "internal_error",
}

// ErrorCode returns a stable snake_case code for err, used by both transports.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return kindCodes[common.KindOf(err)]
}
