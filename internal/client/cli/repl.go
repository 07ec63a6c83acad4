package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasIdentity() bool
	Register(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Events(ctx context.Context, args []string) error
	CreateEvent(ctx context.Context, args []string) error
	Issue(ctx context.Context, args []string) error
	Tickets(ctx context.Context, args []string) error
	MyTickets(ctx context.Context, args []string) error
	MyTransactions(ctx context.Context, args []string) error
	Buy(ctx context.Context, args []string) error
	Transfer(ctx context.Context, args []string) error
	Ping(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: register, events, tickets, ping, exit"
	helpIdentity  = "Available commands: whoami, events, create-event, issue, tickets, my-tickets, my-transactions, buy, transfer, ping, exit"
)

// runREPL starts a simple read–eval–print loop for the ticketledger CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the rest as arguments. The same reader serves the interactive
// prompts of the commands. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Without an identity:
//	  - register <name> <organizer|participant>
//	  - events | tickets <event-id> | ping | help | exit
//
//	With an unlocked identity additionally:
//	  - whoami, create-event, issue <event-id> <tier> <price> <quantity>
//	  - my-tickets, my-transactions
//	  - buy <ticket-id> <price>, transfer <ticket-id> <principal>
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tl %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.hasIdentity() {
				printlnFn(helpIdentity)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx, args)

		case "whoami":
			cmdErr = a.WhoAmI(ctx, args)

		case "events":
			cmdErr = a.Events(ctx, args)

		case "create-event":
			cmdErr = a.CreateEvent(ctx, args)

		case "issue":
			cmdErr = a.Issue(ctx, args)

		case "tickets":
			cmdErr = a.Tickets(ctx, args)

		case "my-tickets":
			cmdErr = a.MyTickets(ctx, args)

		case "my-transactions":
			cmdErr = a.MyTransactions(ctx, args)

		case "buy":
			cmdErr = a.Buy(ctx, args)

		case "transfer":
			cmdErr = a.Transfer(ctx, args)

		case "ping":
			cmdErr = a.Ping(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
