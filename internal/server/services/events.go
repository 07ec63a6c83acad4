package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/clock"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/idgen"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/events"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/repomanager"
)

type EventService struct {
	repos repomanager.RepositoryManager
	clock clock.Clock
	ids   idgen.Generator
	log   logging.Logger
}

func NewEventService(m repomanager.RepositoryManager, clk clock.Clock, ids idgen.Generator, log logging.Logger) *EventService {
	return &EventService{repos: m, clock: clk, ids: ids, log: log.With("service", "events")}
}

// Create registers a new event owned by the caller, who must be an organizer.
func (s *EventService) Create(ctx context.Context, caller models.Principal, name string, date time.Time, location string) (*models.Event, error) {
	r := s.repos.Repositories()

	u, err := lookupCaller(ctx, r.Users, caller)
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleOrganizer {
		return nil, ErrNotOrganizer
	}

	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	now := s.clock.Now()
	switch {
	case name == "":
		return nil, ErrEmptyName
	case location == "":
		return nil, ErrEmptyLocation
	case !date.After(now):
		return nil, ErrDateNotInFuture
	}

	e := &models.Event{
		ID:          s.ids.NewID(),
		Name:        name,
		Date:        date.UTC(),
		Location:    location,
		OrganizerID: caller,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.Events.Create(ctx, e); err != nil {
		return nil, storageErr("create event", err)
	}

	s.log.Info(ctx, "event created", "event_id", e.ID, "organizer_id", caller)
	return e, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return getEvent(ctx, s.repos.Repositories().Events, id)
}

// List returns all events ordered by id.
func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	list, err := s.repos.Repositories().Events.List(ctx)
	if err != nil {
		return nil, storageErr("list events", err)
	}
	return list, nil
}

func getEvent(ctx context.Context, repo events.Repository, id string) (*models.Event, error) {
	e, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, storageErr("load event", err)
	}
	return e, nil
}
