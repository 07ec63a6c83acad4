package models

import (
	"strings"
	"time"
)

// Role is the fixed role a user registers with.
type Role string

const (
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleOrganizer, RoleParticipant:
		return r, true
	}
	return "", false
}

type User struct {
	ID        Principal `json:"id" cbor:"id"`
	Name      string    `json:"name" cbor:"name"`
	Role      Role      `json:"role" cbor:"role"`
	CreatedAt time.Time `json:"created_at" cbor:"created_at"`
	UpdatedAt time.Time `json:"updated_at" cbor:"updated_at"`
}
