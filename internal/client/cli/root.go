package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	switch {
	case a.principal == "":
		return "(no identity)"
	case !a.unlocked:
		return fmt.Sprintf("(%s locked)", a.principal)
	default:
		return fmt.Sprintf("(%s)", a.principal)
	}
}

// Root unlocks a stored identity if there is one and then runs the REPL
// until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to ticketledger CLI (type 'help' for commands)")

	if a.store.Exists() {
		if err := a.unlock(); err != nil {
			printlnFn("Error:", err)
		}
	} else {
		printlnFn("No identity yet, use 'register' to create one")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
