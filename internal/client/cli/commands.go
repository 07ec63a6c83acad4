package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/api"
	"github.com/dmitrijs2005/ticketledger/internal/common"
)

var errNoIdentity = errors.New("no identity, use 'register' first")

// dateLayouts are tried in order when reading an event date.
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

// unlock asks for the passphrase and loads the stored identity.
func (a *App) unlock() error {
	pass, err := getPassword("Passphrase", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	id, err := a.store.Load(pass)
	if err != nil {
		return err
	}
	a.useIdentity(id)
	printlnFn("Unlocked", id.Principal)
	return nil
}

// createIdentity generates and seals a new keypair under a passphrase
// entered twice.
func (a *App) createIdentity() error {
	pass, err := GetNewPassword(getPassword, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	id, err := a.store.Create(pass)
	if err != nil {
		return err
	}
	a.useIdentity(id)
	printlnFn("Created identity", id.Principal)
	return nil
}

func (a *App) requireIdentity() error {
	if a.unlocked {
		return nil
	}
	if !a.store.Exists() {
		return errNoIdentity
	}
	return a.unlock()
}

// Register creates (or unlocks) the local identity and registers it with the
// server under the given role and display name.
func (a *App) Register(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("register <organizer|participant> <name>")
	}
	role, name := args[0], strings.Join(args[1:], " ")

	if !a.unlocked {
		var err error
		if a.store.Exists() {
			err = a.unlock()
		} else {
			err = a.createIdentity()
		}
		if err != nil {
			return err
		}
	}

	u, err := a.client.Register(ctx, name, role)
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	if err := a.requireIdentity(); err != nil {
		return err
	}
	u, err := a.client.WhoAmI(ctx)
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

func (a *App) Events(ctx context.Context, _ []string) error {
	events, err := a.client.ListEvents(ctx)
	if err != nil {
		return err
	}
	printEvents(a.out, events)
	return nil
}

// CreateEvent prompts for the event's name, date and location.
func (a *App) CreateEvent(ctx context.Context, _ []string) error {
	if err := a.requireIdentity(); err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Event name", a.out)
	if err != nil {
		return err
	}
	rawDate, err := getSimpleText(a.reader, "Date (YYYY-MM-DD HH:MM, UTC)", a.out)
	if err != nil {
		return err
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location", a.out)
	if err != nil {
		return err
	}

	e, err := a.client.CreateEvent(ctx, &api.CreateEventRequest{Name: name, Date: date, Location: location})
	if err != nil {
		return err
	}
	printEvents(a.out, []api.Event{*e})
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

func (a *App) Issue(ctx context.Context, args []string) error {
	const u = "issue <event-id> <VVIP|VIP|Regular> <price> <quantity>"
	if len(args) != 4 {
		return usage(u)
	}
	price, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		return usage(u)
	}
	quantity, err := strconv.ParseUint(args[3], 10, 32)
	if err != nil {
		return usage(u)
	}
	if err := a.requireIdentity(); err != nil {
		return err
	}

	tickets, err := a.client.IssueTickets(ctx, &api.IssueTicketsRequest{
		EventID:  args[0],
		Role:     args[1],
		Price:    price,
		Quantity: uint32(quantity),
	})
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Issued %d tickets", len(tickets)))
	printTickets(a.out, tickets)
	return nil
}

func (a *App) Tickets(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("tickets <event-id>")
	}
	tickets, err := a.client.ListEventTickets(ctx, args[0])
	if err != nil {
		return err
	}
	printTickets(a.out, tickets)
	return nil
}

func (a *App) MyTickets(ctx context.Context, _ []string) error {
	if err := a.requireIdentity(); err != nil {
		return err
	}
	tickets, err := a.client.MyTickets(ctx)
	if err != nil {
		return err
	}
	printTickets(a.out, tickets)
	return nil
}

func (a *App) MyTransactions(ctx context.Context, _ []string) error {
	if err := a.requireIdentity(); err != nil {
		return err
	}
	txs, err := a.client.MyTransactions(ctx)
	if err != nil {
		return err
	}
	printTransactions(a.out, txs)
	return nil
}

func (a *App) Buy(ctx context.Context, args []string) error {
	const u = "buy <ticket-id> <price>"
	if len(args) != 2 {
		return usage(u)
	}
	pay, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return usage(u)
	}
	if err := a.requireIdentity(); err != nil {
		return err
	}

	tx, err := a.client.BuyTicket(ctx, args[0], pay)
	if err != nil {
		return err
	}
	printTransactions(a.out, []api.Transaction{*tx})
	return nil
}

func (a *App) Transfer(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("transfer <ticket-id> <principal>")
	}
	if err := a.requireIdentity(); err != nil {
		return err
	}

	tx, err := a.client.TransferTicket(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	printTransactions(a.out, []api.Transaction{*tx})
	return nil
}

func (a *App) Ping(ctx context.Context, _ []string) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	printlnFn("Server is online")
	return nil
}
