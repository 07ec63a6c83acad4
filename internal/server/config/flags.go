package config

import (
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/dmitrijs2005/ticketledger/internal/flagx"
)

// parseFlags overlays the short command-line flags onto config.
//
// Supported flags:
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-w string     HTTP bind address, "" disables it
//	-s string     storage backend: postgres, redis or memory
//	-d string     PostgreSQL DSN
//	-r string     Redis address
//	-t duration   longest accepted token lifetime
//	-m uint       max tickets per issue call
//	-l string     log level
//	-k string     audit sink: none, kafka or s3
//
// Other arguments are filtered out with flagx.FilterArgs first, so -c and
// client flags do not trip the parser.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-s", "-d", "-r", "-t", "-m", "-l", "-k"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.DurationVar(&config.TokenMaxLifetime, "t", config.TokenMaxLifetime, "max token lifetime")
	maxBatch := fs.Uint("m", uint(config.MaxBatchSize), "max tickets per batch")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.AuditSink, "k", config.AuditSink, "audit sink")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *maxBatch > math.MaxUint32 {
		return fmt.Errorf("-m %d is out of range", *maxBatch)
	}
	config.MaxBatchSize = uint32(*maxBatch)
	return nil
}
