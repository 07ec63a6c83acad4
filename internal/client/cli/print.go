package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/api"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer, header string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	return tw
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printUser(w io.Writer, u *api.User) {
	tw := newTable(w, "ID\tNAME\tROLE\tREGISTERED")
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Role, u.CreatedAt.Format(timeLayout))
	_ = tw.Flush()
}

func printEvents(w io.Writer, events []api.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	tw := newTable(w, "ID\tNAME\tDATE\tLOCATION\tORGANIZER")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Date.UTC().Format(timeLayout), e.Location, e.OrganizerID)
	}
	_ = tw.Flush()
}

func printTickets(w io.Writer, tickets []api.Ticket) {
	if len(tickets) == 0 {
		fmt.Fprintln(w, "No tickets")
		return
	}
	tw := newTable(w, "ID\tEVENT\tTIER\tPRICE\tHOLDER")
	for _, t := range tickets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", t.ID, t.EventID, t.Role, t.Price, orDash(t.ParticipantID))
	}
	_ = tw.Flush()
}

func printTransactions(w io.Writer, txs []api.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "No transactions")
		return
	}
	tw := newTable(w, "ID\tMODE\tTICKET\tPAY\tFROM\tTO\tAT")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			tx.ID, tx.Mode, tx.TicketID, tx.Pay, orDash(tx.SenderID), tx.ParticipantID, tx.CreatedAt.UTC().Format(time.RFC3339))
	}
	_ = tw.Flush()
}
