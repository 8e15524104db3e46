package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/o2ledger/internal/domain"
)

func TestJoinIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 0, "0")
	proj := f.project(t, 30)

	res, err := f.projects.Join(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, domain.JoinJoined, res.Status)
	assert.Equal(t, domain.StatePending, res.State)

	res, err = f.projects.Join(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, domain.JoinAlreadyMember, res.Status)
	assert.Equal(t, domain.StatePending, res.State)

	_, err = f.projects.MarkDone(ctx, proj, emp)
	require.NoError(t, err)

	res, err = f.projects.Join(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, domain.JoinAlreadyMember, res.Status)
	assert.Equal(t, domain.StateCompleted, res.State)
}

func TestJoinUnknownProject(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(1, 0, "0")

	_, err := f.projects.Join(context.Background(), 404, emp)
	require.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestMarkDoneAwardsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 0, "0")
	proj := f.project(t, 30)

	_, err := f.projects.Join(ctx, proj, emp)
	require.NoError(t, err)

	res, err := f.projects.MarkDone(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, domain.CompletionAwarded, res.Status)
	assert.Equal(t, int64(30), res.PointsAwarded)
	assert.Equal(t, int64(30), res.PointsBalance)

	res, err = f.projects.MarkDone(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, domain.CompletionAlreadyDone, res.Status)
	assert.Zero(t, res.PointsAwarded)
	assert.Equal(t, int64(30), f.balances(t, emp).PointsBalance)

	assert.Len(t, f.events.completions, 1)
}

func TestMarkDoneZeroReward(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 7, "0")
	proj := f.project(t, 0)

	_, err := f.projects.Join(ctx, proj, emp)
	require.NoError(t, err)

	res, err := f.projects.MarkDone(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, domain.CompletionNoReward, res.Status)
	assert.Equal(t, int64(7), res.PointsBalance)

	state, err := f.projects.State(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, state)
}

func TestMarkDoneRequiresParticipation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 0, "0")
	proj := f.project(t, 30)

	_, err := f.projects.MarkDone(ctx, proj, emp)
	require.ErrorIs(t, err, domain.ErrNotAParticipant)
	assert.Equal(t, int64(0), f.balances(t, emp).PointsBalance)

	_, err = f.projects.MarkDone(ctx, 404, emp)
	require.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestMarkDoneConcurrentAwardsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 0, "0")
	proj := f.project(t, 30)
	_, err := f.projects.Join(ctx, proj, emp)
	require.NoError(t, err)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		awarded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.projects.MarkDone(ctx, proj, emp)
			if err != nil {
				return
			}
			if res.Status == domain.CompletionAwarded {
				mu.Lock()
				awarded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, awarded)
	assert.Equal(t, int64(30), f.balances(t, emp).PointsBalance)
}

func TestMarkDoneRollsBackWhenAwardFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 0, "0")
	proj := f.project(t, 30)
	_, err := f.projects.Join(ctx, proj, emp)
	require.NoError(t, err)

	f.store.FailOn("AddEmployeePoints", assert.AnError)
	_, err = f.projects.MarkDone(ctx, proj, emp)
	require.ErrorIs(t, err, assert.AnError)

	state, err := f.projects.State(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, domain.StatePending, state)

	f.store.FailOn("AddEmployeePoints", nil)
	res, err := f.projects.MarkDone(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, domain.CompletionAwarded, res.Status)
}

func TestProjectOwnershipAndViews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := rowToNGO(f.store.AddNGO(901, "Blue Ocean"))
	empID := f.employee(1, 0, "0")
	emp, err := f.employees.GetByID(ctx, empID)
	require.NoError(t, err)

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	p, err := f.projects.Create(ctx, f.ngo, domain.ProjectInput{Name: "Reef", DateStart: &start, DateEnd: &end, RewardPoints: 10})
	require.NoError(t, err)
	require.NotNil(t, p.DateEnd)
	assert.True(t, p.DateEnd.Equal(end))

	_, err = f.projects.Update(ctx, other, p.ID, domain.ProjectInput{Name: "Hijack"})
	require.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.projects.Update(ctx, f.ngo, p.ID, domain.ProjectInput{Name: "Reef restoration", RewardPoints: 40})
	require.NoError(t, err)
	assert.Equal(t, int64(40), updated.RewardPoints)

	_, err = f.projects.View(ctx, domain.Principal{NGO: &other}, p.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	employee := domain.Principal{Employee: emp}
	_, err = f.projects.View(ctx, employee, p.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.projects.Join(ctx, p.ID, empID)
	require.NoError(t, err)
	view, err := f.projects.View(ctx, employee, p.ID)
	require.NoError(t, err)
	assert.True(t, view.IsMember)
	assert.False(t, view.IsCompleted)
	assert.Equal(t, int64(1), view.Participants)

	owner, err := f.projects.View(ctx, domain.Principal{NGO: &f.ngo}, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), owner.Completions)
}

func TestProjectValidation(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err := f.projects.Create(context.Background(), f.ngo, domain.ProjectInput{Name: " ", RewardPoints: -1, DateStart: &start, DateEnd: &end})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "reward_points")
	assert.Contains(t, verr.Fields, "date_end")
}

func TestProjectListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 0, "0")
	var ids []int64
	for i := 0; i < 3; i++ {
		ids = append(ids, f.project(t, 5))
	}
	_, err := f.projects.Join(ctx, ids[0], emp)
	require.NoError(t, err)
	_, err = f.projects.Join(ctx, ids[2], emp)
	require.NoError(t, err)

	all, total, err := f.projects.ListForNGO(ctx, f.ngo, domain.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, ids[2], all[0].ID)

	mine, total, err := f.projects.ListForEmployee(ctx, emp, domain.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, mine, 2)
	assert.Equal(t, ids[2], mine[0].ID)
	assert.Equal(t, ids[0], mine[1].ID)
}
