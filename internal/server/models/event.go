package models

import "time"

type Event struct {
	ID          string    `json:"id" cbor:"id"`
	Name        string    `json:"name" cbor:"name"`
	Date        time.Time `json:"date" cbor:"date"`
	Location    string    `json:"location" cbor:"location"`
	OrganizerID Principal `json:"organizer_id" cbor:"organizer_id"`
	CreatedAt   time.Time `json:"created_at" cbor:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" cbor:"updated_at"`
}

// StartedAt reports whether the event has begun at now.
func (e Event) StartedAt(now time.Time) bool {
	return !e.Date.After(now)
}
