// Package client contains the CLI's side of the LedgerService protocol.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) the CLI
//     programs against.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, signs every call with a short-lived token minted from the
//     caller's private key, and maps gRPC statuses to client errors.
//
// # Error Handling
//
// Failed calls return *APIError carrying the gRPC code and the stable reason
// code sent by the server. Transport conditions unwrap to the sentinels
// ErrUnavailable and ErrUnauthorized so callers can match them with errors.Is.
package client
