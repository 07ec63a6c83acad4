package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/ticketledger/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     address and port of the backend server
//	-i string     identity directory
//	-t duration   token lifetime
//
// The arguments are filtered with flagx.FilterArgs first so -c and unknown
// flags do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-t"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.IdentityDir, "i", cfg.IdentityDir, "identity directory")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "token lifetime")

	return fs.Parse(args)
}
