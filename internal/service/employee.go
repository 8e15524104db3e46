package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/repository"
	"github.com/set-night/o2ledger/internal/repository/sqlc"
)

// ErrTelegramLinked is returned when a chat user is already linked to another
// employee.
var ErrTelegramLinked = errors.New("telegram account is linked to another employee")

type EmployeeService struct {
	store       repository.Store
	leaderboard *LeaderboardService
}

func NewEmployeeService(store repository.Store, leaderboard *LeaderboardService) *EmployeeService {
	return &EmployeeService{store: store, leaderboard: leaderboard}
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	row, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", orNotFound(err, domain.ErrEmployeeNotFound))
	}
	e := rowToEmployee(row)
	return &e, nil
}

func (s *EmployeeService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Employee, error) {
	row, err := s.store.GetEmployeeByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get employee by telegram id: %w", orNotFound(err, domain.ErrEmployeeNotFound))
	}
	e := rowToEmployee(row)
	return &e, nil
}

// Profile returns the balances with the derived badge and rank.
func (s *EmployeeService) Profile(ctx context.Context, employeeID int64) (domain.Profile, error) {
	emp, err := s.GetByID(ctx, employeeID)
	if err != nil {
		return domain.Profile{}, err
	}

	standings, err := s.leaderboard.Standings(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	standing, _ := domain.RankOf(standings, emp.ID)

	return domain.Profile{
		Employee:  *emp,
		Badge:     emp.Badge(),
		Rank:      standing.Rank,
		Employees: len(standings),
	}, nil
}

// LinkTelegram binds a chat user to the employee so the bot can resolve it.
func (s *EmployeeService) LinkTelegram(ctx context.Context, employeeID, telegramID int64) (*domain.Employee, error) {
	row, err := s.store.SetEmployeeTelegramID(ctx, sqlc.SetEmployeeTelegramIDParams{
		TelegramID: &telegramID,
		ID:         employeeID,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrTelegramLinked
		}
		return nil, fmt.Errorf("link telegram: %w", orNotFound(err, domain.ErrEmployeeNotFound))
	}
	e := rowToEmployee(row)
	return &e, nil
}
