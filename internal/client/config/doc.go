// Package config loads runtime configuration for the ticketledger CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. TICKETLEDGER_CLI_* environment variables.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the backend gRPC endpoint
//	-i string     directory holding the sealed identity key
//	-t duration   lifetime of each minted call token
//
// # File schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "identity_dir": "~/.ticketledger",
//	  "token_ttl": "1m",
//	  "call_timeout": "10s"
//	}
package config
