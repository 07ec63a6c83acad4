package api

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	OrganizerID string    `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Ticket is unsold while ParticipantID is empty.
type Ticket struct {
	ID            string    `json:"id"`
	Role          string    `json:"role"`
	Price         uint64    `json:"price"`
	EventID       string    `json:"event_id"`
	ParticipantID string    `json:"participant_id,omitempty"`
	OrganizerID   string    `json:"organizer_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Transaction has a SenderID only for transfers.
type Transaction struct {
	ID            string    `json:"id"`
	Mode          string    `json:"mode"`
	Pay           uint64    `json:"pay"`
	TicketID      string    `json:"ticket_id"`
	SenderID      string    `json:"sender_id,omitempty"`
	ParticipantID string    `json:"participant_id"`
	OrganizerID   string    `json:"organizer_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type WhoAmIRequest struct{}

type UserResponse struct {
	User User `json:"user"`
}

type CreateEventRequest struct {
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
}

type EventResponse struct {
	Event Event `json:"event"`
}

type ListEventsRequest struct{}

type EventsResponse struct {
	Events []Event `json:"events"`
}

type IssueTicketsRequest struct {
	EventID  string `json:"event_id"`
	Role     string `json:"role"`
	Price    uint64 `json:"price"`
	Quantity uint32 `json:"quantity"`
}

type ListEventTicketsRequest struct {
	EventID string `json:"event_id"`
}

type MyTicketsRequest struct{}

type TicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

type MyTransactionsRequest struct{}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type BuyTicketRequest struct {
	TicketID string `json:"ticket_id"`
	Pay      uint64 `json:"pay"`
}

type TransferTicketRequest struct {
	TicketID string `json:"ticket_id"`
	To       string `json:"to"`
}

type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}
