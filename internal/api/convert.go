package api

import "github.com/dmitrijs2005/ticketledger/internal/server/models"

func FromUser(u *models.User) User {
	return User{ID: string(u.ID), Name: u.Name, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

func FromEvent(e *models.Event) Event {
	return Event{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Location:    e.Location,
		OrganizerID: string(e.OrganizerID),
		CreatedAt:   e.CreatedAt,
	}
}

func FromTicket(t *models.Ticket) Ticket {
	return Ticket{
		ID:            t.ID,
		Role:          string(t.Role),
		Price:         t.Price,
		EventID:       t.EventID,
		ParticipantID: string(t.ParticipantID.Principal),
		OrganizerID:   string(t.OrganizerID),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func FromTransaction(tx *models.Transaction) Transaction {
	return Transaction{
		ID:            tx.ID,
		Mode:          string(tx.Mode),
		Pay:           tx.Pay,
		TicketID:      tx.TicketID,
		SenderID:      string(tx.SenderID.Principal),
		ParticipantID: string(tx.ParticipantID),
		OrganizerID:   string(tx.OrganizerID),
		CreatedAt:     tx.CreatedAt,
	}
}

// FromEvents and the other list converters never return nil, so an empty
// result encodes as [] rather than null.
func FromEvents(list []*models.Event) []Event {
	out := make([]Event, 0, len(list))
	for _, e := range list {
		out = append(out, FromEvent(e))
	}
	return out
}

func FromTickets(list []*models.Ticket) []Ticket {
	out := make([]Ticket, 0, len(list))
	for _, t := range list {
		out = append(out, FromTicket(t))
	}
	return out
}

func FromTransactions(list []*models.Transaction) []Transaction {
	out := make([]Transaction, 0, len(list))
	for _, tx := range list {
		out = append(out, FromTransaction(tx))
	}
	return out
}
