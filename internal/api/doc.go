// Package api is the wire contract of the ticketledger.v1.LedgerService gRPC
// service: request and response messages, the JSON codec they travel in, the
// service descriptor and a typed client.
//
// Messages are plain structs; a client selects the codec with the "json"
// content subtype, which NewLedgerClient does on every call.
package api
