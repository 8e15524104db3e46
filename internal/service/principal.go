package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/repository"
)

type PrincipalService struct {
	store repository.Store
}

func NewPrincipalService(store repository.Store) *PrincipalService {
	return &PrincipalService{store: store}
}

// Resolve finds the employee and NGO linked to a login user id.
func (s *PrincipalService) Resolve(ctx context.Context, userID int64) (domain.Principal, error) {
	p := domain.Principal{UserID: userID}

	emp, err := s.store.GetEmployeeByUserID(ctx, userID)
	switch {
	case err == nil:
		e := rowToEmployee(emp)
		p.Employee = &e
	case !errors.Is(err, pgx.ErrNoRows):
		return domain.Principal{}, fmt.Errorf("get employee: %w", err)
	}

	ngo, err := s.store.GetNGOByUserID(ctx, userID)
	switch {
	case err == nil:
		n := rowToNGO(ngo)
		p.NGO = &n
	case !errors.Is(err, pgx.ErrNoRows):
		return domain.Principal{}, fmt.Errorf("get ngo: %w", err)
	}

	if !p.IsEmployee() && !p.IsNGO() {
		return domain.Principal{}, domain.ErrUnknownPrincipal
	}
	return p, nil
}
