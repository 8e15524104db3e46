package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/repository/memory"
	"github.com/set-night/o2ledger/internal/repository/sqlc"
)

type recorder struct {
	mu          sync.Mutex
	completions []domain.CompletionResult
	purchases   []domain.PurchaseResult
}

func (r *recorder) ProjectCompleted(_ context.Context, _ domain.Employee, _ domain.Project, res domain.CompletionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = append(r.completions, res)
}

func (r *recorder) ActivityPurchased(_ context.Context, _ domain.Employee, _ domain.Activity, res domain.PurchaseResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchases = append(r.purchases, res)
}

type fixture struct {
	store       *memory.Store
	ledger      *Ledger
	projects    *ProjectService
	activities  *ActivityService
	leaderboard *LeaderboardService
	employees   *EmployeeService
	principals  *PrincipalService
	events      *recorder
	ngo         domain.NGO
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	events := &recorder{}
	ledger := NewLedger(store)
	leaderboard := NewLeaderboardService(store)
	return &fixture{
		store:       store,
		ledger:      ledger,
		projects:    NewProjectService(store, ledger, events),
		activities:  NewActivityService(store, ledger, events),
		leaderboard: leaderboard,
		employees:   NewEmployeeService(store, leaderboard),
		principals:  NewPrincipalService(store),
		events:      events,
		ngo:         rowToNGO(store.AddNGO(900, "Green Earth")),
	}
}

func (f *fixture) employee(userID int64, points int64, currency string) int64 {
	return f.store.AddEmployee(userID, "emp", points, decimal.RequireFromString(currency)).ID
}

func (f *fixture) project(t *testing.T, reward int64) int64 {
	t.Helper()
	p, err := f.projects.Create(context.Background(), f.ngo, domain.ProjectInput{Name: "Beach cleanup", RewardPoints: reward})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) activity(t *testing.T, cost int64, payout string, active bool) int64 {
	t.Helper()
	a, err := f.activities.Create(context.Background(), f.ngo, domain.ActivityInput{
		Name:           "Tree planting",
		PointsCost:     cost,
		CurrencyPayout: decimal.RequireFromString(payout),
		Active:         &active,
	})
	require.NoError(t, err)
	return a.ID
}

func (f *fixture) balances(t *testing.T, employeeID int64) sqlc.Employee {
	t.Helper()
	row, err := f.store.GetEmployee(context.Background(), employeeID)
	require.NoError(t, err)
	return row
}
