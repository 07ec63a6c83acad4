// Package cli provides the interactive ticketledger command-line client.
//
// It wires configuration, the sealed caller identity, the gRPC client and a
// REPL. Typical flow: unlock the identity (or create one with register),
// then browse events, issue, buy and transfer tickets.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
