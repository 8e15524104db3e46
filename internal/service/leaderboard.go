package service

import (
	"context"
	"fmt"

	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/repository"
)

// LeaderboardService ranks every employee by O2 balance on each call.
type LeaderboardService struct {
	store repository.Store
}

func NewLeaderboardService(store repository.Store) *LeaderboardService {
	return &LeaderboardService{store: store}
}

func (s *LeaderboardService) Standings(ctx context.Context) ([]domain.Standing, error) {
	rows, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	employees := make([]domain.Employee, len(rows))
	for i, r := range rows {
		employees[i] = rowToEmployee(r)
	}
	return domain.Rank(employees), nil
}

// Top returns the first n standings. Ties at the cut are kept.
func (s *LeaderboardService) Top(ctx context.Context, n int) ([]domain.Standing, error) {
	standings, err := s.Standings(ctx)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(standings) {
		return standings, nil
	}
	cut := n
	for cut < len(standings) && standings[cut].Rank == standings[n-1].Rank {
		cut++
	}
	return standings[:cut], nil
}
