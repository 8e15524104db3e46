package memory

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/o2ledger/internal/repository/sqlc"
)

func TestExecTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	e := s.AddEmployee(1, "Ana", 40, decimal.Zero)

	boom := errors.New("boom")
	err := s.ExecTx(ctx, func(q sqlc.Querier) error {
		_, err := q.DebitEmployeePoints(ctx, sqlc.DebitEmployeePointsParams{Points: 30, ID: e.ID})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), got.PointsBalance)
}

func TestExecTxCommits(t *testing.T) {
	ctx := context.Background()
	s := New()
	e := s.AddEmployee(1, "Ana", 40, decimal.Zero)

	err := s.ExecTx(ctx, func(q sqlc.Querier) error {
		if _, err := q.DebitEmployeePoints(ctx, sqlc.DebitEmployeePointsParams{Points: 30, ID: e.ID}); err != nil {
			return err
		}
		_, err := q.AddEmployeeCurrency(ctx, sqlc.AddEmployeeCurrencyParams{Amount: decimal.RequireFromString("5.50"), ID: e.ID})
		return err
	})
	require.NoError(t, err)

	got, err := s.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.PointsBalance)
	assert.True(t, got.CurrencyBalance.Equal(decimal.RequireFromString("5.5")))
}

func TestDebitRefusesOverdraft(t *testing.T) {
	ctx := context.Background()
	s := New()
	e := s.AddEmployee(1, "Ana", 10, decimal.Zero)

	_, err := s.DebitEmployeePoints(ctx, sqlc.DebitEmployeePointsParams{Points: 11, ID: e.ID})
	require.ErrorIs(t, err, pgx.ErrNoRows)

	got, _ := s.GetEmployee(ctx, e.ID)
	assert.Equal(t, int64(10), got.PointsBalance)
}

func TestParticipantJoinAndCompleteOnce(t *testing.T) {
	ctx := context.Background()
	s := New()
	ngo := s.AddNGO(100, "Green")
	e := s.AddEmployee(1, "Ana", 0, decimal.Zero)
	p, err := s.CreateProject(ctx, sqlc.CreateProjectParams{NgoID: ngo.ID, Name: "Beach", RewardPoints: 30})
	require.NoError(t, err)

	key := sqlc.AddProjectParticipantParams{ProjectID: p.ID, EmployeeID: e.ID}
	_, err = s.AddProjectParticipant(ctx, key)
	require.NoError(t, err)
	_, err = s.AddProjectParticipant(ctx, key)
	require.ErrorIs(t, err, pgx.ErrNoRows)

	done := sqlc.CompleteProjectParticipantParams{ProjectID: p.ID, EmployeeID: e.ID}
	pp, err := s.CompleteProjectParticipant(ctx, done)
	require.NoError(t, err)
	assert.True(t, pp.CompletedAt.Valid)
	_, err = s.CompleteProjectParticipant(ctx, done)
	require.ErrorIs(t, err, pgx.ErrNoRows)

	stats, err := s.GetProjectStats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, sqlc.GetProjectStatsRow{Participants: 1, Completions: 1}, stats)
}

func TestForeignKeyAndUniqueViolations(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.CreateProject(ctx, sqlc.CreateProjectParams{NgoID: 999, Name: "Orphan"})
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, codeForeignKeyViolation, pgErr.Code)

	a := s.AddEmployee(1, "Ana", 0, decimal.Zero)
	b := s.AddEmployee(2, "Ben", 0, decimal.Zero)
	tg := int64(555)
	_, err = s.SetEmployeeTelegramID(ctx, sqlc.SetEmployeeTelegramIDParams{TelegramID: &tg, ID: a.ID})
	require.NoError(t, err)
	_, err = s.SetEmployeeTelegramID(ctx, sqlc.SetEmployeeTelegramIDParams{TelegramID: &tg, ID: b.ID})
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, codeUniqueViolation, pgErr.Code)

	got, err := s.GetEmployeeByTelegramID(ctx, tg)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestListingPagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	ngo := s.AddNGO(100, "Green")
	var ids []int64
	for i := 0; i < 5; i++ {
		a, err := s.CreateActivity(ctx, sqlc.CreateActivityParams{NgoID: ngo.ID, Name: "a", PointsCost: 1, Active: i%2 == 0})
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	page1, err := s.ListActivitiesByNGO(ctx, sqlc.ListActivitiesByNGOParams{NgoID: ngo.ID, Limit: 2, Offset: 0})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, ids[4], page1[0].ID)
	assert.Equal(t, ids[3], page1[1].ID)

	page3, err := s.ListActivitiesByNGO(ctx, sqlc.ListActivitiesByNGOParams{NgoID: ngo.ID, Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page3, 1)

	active, err := s.CountActiveActivities(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), active)
}

func TestFailOnInjectsError(t *testing.T) {
	ctx := context.Background()
	s := New()
	ngo := s.AddNGO(100, "Green")
	e := s.AddEmployee(1, "Ana", 0, decimal.Zero)
	a, err := s.CreateActivity(ctx, sqlc.CreateActivityParams{NgoID: ngo.ID, Name: "a", PointsCost: 1, Active: true})
	require.NoError(t, err)

	boom := errors.New("disk full")
	s.FailOn("CreatePurchase", boom)
	_, err = s.CreatePurchase(ctx, sqlc.CreatePurchaseParams{Receipt: uuid.New(), ActivityID: a.ID, EmployeeID: e.ID, NgoID: ngo.ID})
	require.ErrorIs(t, err, boom)

	s.FailOn("CreatePurchase", nil)
	_, err = s.CreatePurchase(ctx, sqlc.CreatePurchaseParams{Receipt: uuid.New(), ActivityID: a.ID, EmployeeID: e.ID, NgoID: ngo.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, s.PurchaseCount())
}

func TestPageHelperBounds(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Equal(t, []int{2, 3}, page(items, math.MaxInt32, 1))
	assert.Nil(t, page(items, 5, math.MaxInt32))
	assert.Equal(t, []int{1}, page(items, 1, -4))
}
