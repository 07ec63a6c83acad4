package models

import "time"

type TxMode string

const (
	TxBuy      TxMode = "buy"
	TxTransfer TxMode = "transfer"
)

// Transaction is an append-only record of a sale or a transfer. SenderID is
// present only for transfers; Pay is zero for them.
type Transaction struct {
	ID            string        `json:"id" cbor:"id"`
	Mode          TxMode        `json:"mode" cbor:"mode"`
	Pay           uint64        `json:"pay" cbor:"pay"`
	TicketID      string        `json:"ticket_id" cbor:"ticket_id"`
	SenderID      NullPrincipal `json:"sender_id" cbor:"sender_id"`
	ParticipantID Principal     `json:"participant_id" cbor:"participant_id"`
	OrganizerID   Principal     `json:"organizer_id" cbor:"organizer_id"`
	CreatedAt     time.Time     `json:"created_at" cbor:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" cbor:"updated_at"`
}

// Involves reports whether p received or sent the ticket in this transaction.
func (t Transaction) Involves(p Principal) bool {
	return t.ParticipantID == p || t.SenderID.Is(p)
}
