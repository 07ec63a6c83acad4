// Package models defines the ledger's persisted records.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/ticketledger/internal/codec"
)

// Principal is a caller's cryptographic identity (see auth.PrincipalOf).
type Principal string

// NullPrincipal is an optional Principal. The zero value is absent.
type NullPrincipal struct {
	Principal Principal
	Valid     bool
}

// SomePrincipal returns a present NullPrincipal.
func SomePrincipal(p Principal) NullPrincipal {
	return NullPrincipal{Principal: p, Valid: true}
}

// Is reports whether n is present and equal to p.
func (n NullPrincipal) Is(p Principal) bool {
	return n.Valid && n.Principal == p
}

func (n *NullPrincipal) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*n = NullPrincipal{}
	case string:
		*n = SomePrincipal(Principal(v))
	case []byte:
		*n = SomePrincipal(Principal(v))
	default:
		return fmt.Errorf("cannot scan %T into NullPrincipal", value)
	}
	return nil
}

func (n NullPrincipal) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return string(n.Principal), nil
}

func (n NullPrincipal) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(string(n.Principal))
}

func (n *NullPrincipal) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*n = NullPrincipal{}
		return nil
	}
	*n = SomePrincipal(Principal(*s))
	return nil
}

func (n NullPrincipal) MarshalCBOR() ([]byte, error) {
	if !n.Valid {
		return codec.Marshal(nil)
	}
	return codec.Marshal(string(n.Principal))
}

func (n *NullPrincipal) UnmarshalCBOR(data []byte) error {
	var s *string
	if err := codec.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*n = NullPrincipal{}
		return nil
	}
	*n = SomePrincipal(Principal(*s))
	return nil
}
