// Package services holds the ledger's business rules: registration, events,
// ticket issuance and sale, and the transaction log.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/ticketledger/internal/clock"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/users"
)

// UserService maps caller identities to users with a fixed role. Its role
// predicates are the only authorization primitive the other services use.
type UserService struct {
	repos repomanager.RepositoryManager
	clock clock.Clock
	log   logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, clk clock.Clock, log logging.Logger) *UserService {
	return &UserService{repos: m, clock: clk, log: log.With("service", "users")}
}

// Register creates the caller's user. A caller registers at most once.
func (s *UserService) Register(ctx context.Context, caller models.Principal, name string, role models.Role) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	r, ok := models.ParseRole(string(role))
	if !ok {
		return nil, ErrUnknownRole
	}

	now := s.clock.Now()
	u := &models.User{ID: caller, Name: name, Role: r, CreatedAt: now, UpdatedAt: now}

	if err := s.repos.Repositories().Users.Create(ctx, u); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, ErrAlreadyRegistered
		}
		return nil, storageErr("create user", err)
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Get returns the caller's user, or ErrNotRegistered.
func (s *UserService) Get(ctx context.Context, caller models.Principal) (*models.User, error) {
	return lookupCaller(ctx, s.repos.Repositories().Users, caller)
}

func (s *UserService) IsOrganizer(ctx context.Context, caller models.Principal) (bool, error) {
	return s.hasRole(ctx, caller, models.RoleOrganizer)
}

func (s *UserService) IsParticipant(ctx context.Context, caller models.Principal) (bool, error) {
	return s.hasRole(ctx, caller, models.RoleParticipant)
}

func (s *UserService) hasRole(ctx context.Context, caller models.Principal, role models.Role) (bool, error) {
	u, err := s.repos.Repositories().Users.Get(ctx, caller)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, storageErr("load user", err)
	}
	return u.Role == role, nil
}

// lookupCaller loads the caller through repo so that callers inside an atomic
// unit read from the unit.
func lookupCaller(ctx context.Context, repo users.Repository, caller models.Principal) (*models.User, error) {
	if caller == "" {
		return nil, ErrNotRegistered
	}
	u, err := repo.Get(ctx, caller)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, storageErr("load user", err)
	}
	return u, nil
}
