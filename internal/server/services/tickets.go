package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/ticketledger/internal/clock"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/idgen"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/dmitrijs2005/ticketledger/internal/server/audit"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/tickets"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/users"
)

const DefaultMaxBatchSize = 10_000

// TicketService issues, sells and transfers tickets. A ticket moves from
// unsold to sold exactly once and afterwards only changes hands.
type TicketService struct {
	repos        repomanager.RepositoryManager
	ledger       *TransactionLedger
	clock        clock.Clock
	ids          idgen.Generator
	log          logging.Logger
	publisher    audit.Publisher
	maxBatchSize uint32
}

type TicketServiceOption func(*TicketService)

// WithMaxBatchSize caps how many tickets one IssueBatch call may create.
func WithMaxBatchSize(n uint32) TicketServiceOption {
	return func(s *TicketService) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// WithPublisher sends every committed transaction to p.
func WithPublisher(p audit.Publisher) TicketServiceOption {
	return func(s *TicketService) {
		if p != nil {
			s.publisher = p
		}
	}
}

func NewTicketService(m repomanager.RepositoryManager, ledger *TransactionLedger, clk clock.Clock, ids idgen.Generator, log logging.Logger, opts ...TicketServiceOption) *TicketService {
	s := &TicketService{
		repos:        m,
		ledger:       ledger,
		clock:        clk,
		ids:          ids,
		log:          log.With("service", "tickets"),
		publisher:    audit.Nop{},
		maxBatchSize: DefaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueBatch creates quantity identical unsold tickets for an event the
// caller organizes. Either all tickets are stored or none.
func (s *TicketService) IssueBatch(ctx context.Context, caller models.Principal, eventID string, role models.TicketRole, price uint64, quantity uint32) ([]*models.Ticket, error) {
	var batch []*models.Ticket

	err := s.repos.Atomic(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		u, err := lookupCaller(ctx, r.Users, caller)
		if err != nil {
			return err
		}
		e, err := getEvent(ctx, r.Events, eventID)
		if err != nil {
			return err
		}
		if u.Role != models.RoleOrganizer {
			return ErrNotOrganizer
		}
		if e.OrganizerID != caller {
			return ErrNotEventOrganizer
		}

		now := s.clock.Now()
		if e.StartedAt(now) {
			return ErrEventStarted
		}

		tr, ok := models.ParseTicketRole(string(role))
		switch {
		case quantity == 0:
			return ErrInvalidQuantity
		case quantity > s.maxBatchSize:
			return ErrBatchTooLarge
		case price == 0:
			return ErrInvalidPrice
		case !ok:
			return ErrUnknownTicketRole
		}

		batch = make([]*models.Ticket, 0, quantity)
		for i := uint32(0); i < quantity; i++ {
			batch = append(batch, &models.Ticket{
				ID:          s.ids.NewID(),
				Role:        tr,
				Price:       price,
				EventID:     e.ID,
				OrganizerID: caller,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
		if err := r.Tickets.CreateBatch(ctx, batch); err != nil {
			return storageErr("create tickets", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "tickets issued", "event_id", eventID, "count", len(batch), "role", batch[0].Role)
	return batch, nil
}

// Buy sells an unsold ticket to the caller for exactly its price.
func (s *TicketService) Buy(ctx context.Context, caller models.Principal, ticketID string, pay uint64) (*models.Transaction, error) {
	var tx *models.Transaction

	err := s.repos.Atomic(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := requireParticipant(ctx, r.Users, caller); err != nil {
			return err
		}
		t, err := getTicket(ctx, r.Tickets, ticketID)
		if err != nil {
			return err
		}
		if pay != t.Price {
			return ErrPriceMismatch
		}
		if t.Sold() {
			return ErrTicketAlreadySold
		}

		t.ParticipantID = models.SomePrincipal(caller)
		t.UpdatedAt = s.clock.Now()
		if err := r.Tickets.Update(ctx, t); err != nil {
			return storageErr("update ticket", err)
		}

		tx, err = s.ledger.Record(ctx, r, RecordInput{
			Mode:          models.TxBuy,
			Pay:           pay,
			TicketID:      t.ID,
			ParticipantID: caller,
			OrganizerID:   t.OrganizerID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "ticket sold", "ticket_id", ticketID, "participant_id", caller, "transaction_id", tx.ID)
	s.publish(ctx, tx)
	return tx, nil
}

// Transfer hands a ticket the caller holds to another participant.
func (s *TicketService) Transfer(ctx context.Context, caller models.Principal, ticketID string, to models.Principal) (*models.Transaction, error) {
	var tx *models.Transaction

	err := s.repos.Atomic(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		u, err := lookupCaller(ctx, r.Users, caller)
		if err != nil {
			return err
		}

		recipient, err := r.Users.Get(ctx, to)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrRecipientNotFound
			}
			return storageErr("load recipient", err)
		}
		if recipient.Role != models.RoleParticipant {
			return ErrRecipientNotParticipant
		}
		if caller == to {
			return ErrSelfTransfer
		}
		if u.Role != models.RoleParticipant {
			return ErrNotParticipant
		}

		t, err := getTicket(ctx, r.Tickets, ticketID)
		if err != nil {
			return err
		}
		if !t.ParticipantID.Is(caller) {
			return ErrNotOwner
		}

		t.ParticipantID = models.SomePrincipal(to)
		t.UpdatedAt = s.clock.Now()
		if err := r.Tickets.Update(ctx, t); err != nil {
			return storageErr("update ticket", err)
		}

		tx, err = s.ledger.Record(ctx, r, RecordInput{
			Mode:          models.TxTransfer,
			TicketID:      t.ID,
			SenderID:      models.SomePrincipal(caller),
			ParticipantID: to,
			OrganizerID:   t.OrganizerID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "ticket transferred", "ticket_id", ticketID, "from", caller, "to", to, "transaction_id", tx.ID)
	s.publish(ctx, tx)
	return tx, nil
}

// ListForEvent returns every ticket of an existing event.
func (s *TicketService) ListForEvent(ctx context.Context, eventID string) ([]*models.Ticket, error) {
	r := s.repos.Repositories()
	if _, err := getEvent(ctx, r.Events, eventID); err != nil {
		return nil, err
	}
	return s.list(ctx, r, tickets.Filter{EventID: eventID})
}

// ListForHolder returns the tickets an organizer issued or a participant holds.
func (s *TicketService) ListForHolder(ctx context.Context, u *models.User) ([]*models.Ticket, error) {
	f := tickets.Filter{ParticipantID: u.ID}
	if u.Role == models.RoleOrganizer {
		f = tickets.Filter{OrganizerID: u.ID}
	}
	return s.list(ctx, s.repos.Repositories(), f)
}

func (s *TicketService) list(ctx context.Context, r repomanager.Repositories, f tickets.Filter) ([]*models.Ticket, error) {
	list, err := r.Tickets.List(ctx, f)
	if err != nil {
		return nil, storageErr("list tickets", err)
	}
	return list, nil
}

func (s *TicketService) publish(ctx context.Context, tx *models.Transaction) {
	if err := s.publisher.Publish(ctx, tx); err != nil {
		s.log.Warn(ctx, "audit publish failed", "transaction_id", tx.ID, "error", err)
	}
}

func requireParticipant(ctx context.Context, repo users.Repository, caller models.Principal) error {
	u, err := lookupCaller(ctx, repo, caller)
	if err != nil {
		return err
	}
	if u.Role != models.RoleParticipant {
		return ErrNotParticipant
	}
	return nil
}

func getTicket(ctx context.Context, repo tickets.Repository, id string) (*models.Ticket, error) {
	t, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, storageErr("load ticket", err)
	}
	return t, nil
}
