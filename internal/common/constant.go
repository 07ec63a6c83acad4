// Package common contains shared constants and sentinel errors used across
// ticketledger components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// signed caller token on outbound requests.
const AccessTokenHeaderName = "access_token"

// TokenAudience is the default audience caller tokens are minted for.
const TokenAudience = "ticketledger"
