package models

import (
	"strings"
	"time"
)

// TicketRole is a ticket's price tier.
type TicketRole string

const (
	TicketVVIP    TicketRole = "VVIP"
	TicketVIP     TicketRole = "VIP"
	TicketRegular TicketRole = "Regular"
)

// ParseTicketRole accepts a tier name in any case and returns its canonical form.
func ParseTicketRole(s string) (TicketRole, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vvip":
		return TicketVVIP, true
	case "vip":
		return TicketVIP, true
	case "regular":
		return TicketRegular, true
	}
	return "", false
}

// Ticket is unsold while ParticipantID is absent. Once set it is only ever
// reassigned, never cleared.
type Ticket struct {
	ID            string        `json:"id" cbor:"id"`
	Role          TicketRole    `json:"role" cbor:"role"`
	Price         uint64        `json:"price" cbor:"price"`
	EventID       string        `json:"event_id" cbor:"event_id"`
	ParticipantID NullPrincipal `json:"participant_id" cbor:"participant_id"`
	OrganizerID   Principal     `json:"organizer_id" cbor:"organizer_id"`
	CreatedAt     time.Time     `json:"created_at" cbor:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" cbor:"updated_at"`
}

func (t Ticket) Sold() bool {
	return t.ParticipantID.Valid
}
