package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/o2ledger/internal/domain"
)

func TestCompleteThenPurchaseScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 0, "0")
	proj := f.project(t, 30)
	act := f.activity(t, 30, "5", true)

	_, err := f.projects.Join(ctx, proj, emp)
	require.NoError(t, err)
	done, err := f.projects.MarkDone(ctx, proj, emp)
	require.NoError(t, err)
	assert.Equal(t, int64(30), done.PointsBalance)

	res, err := f.activities.Purchase(ctx, emp, act)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.PointsBalance)
	assert.True(t, res.CurrencyBalance.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, int64(30), res.Purchase.PointsPaid)
	assert.True(t, res.Purchase.CurrencyReceived.Equal(decimal.NewFromInt(5)))
	assert.NotEqual(t, uuid.Nil, res.Purchase.Receipt)

	history, total, err := f.activities.PurchaseHistory(ctx, emp, domain.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, history, 1)
	assert.Equal(t, res.Purchase.Receipt, history[0].Receipt)
	assert.Len(t, f.events.purchases, 1)
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 29, "0")
	act := f.activity(t, 30, "5", true)

	_, err := f.activities.Purchase(ctx, emp, act)
	var ib *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &ib)
	assert.Equal(t, int64(30), ib.Required)
	assert.Equal(t, int64(29), ib.Available)

	row := f.balances(t, emp)
	assert.Equal(t, int64(29), row.PointsBalance)
	assert.True(t, row.CurrencyBalance.IsZero())
	assert.Zero(t, f.store.PurchaseCount())
}

func TestPurchaseInactiveActivity(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(1, 100, "0")
	act := f.activity(t, 10, "1", false)

	_, err := f.activities.Purchase(context.Background(), emp, act)
	require.ErrorIs(t, err, domain.ErrActivityUnavailable)
	assert.Equal(t, int64(100), f.balances(t, emp).PointsBalance)

	_, err = f.activities.Purchase(context.Background(), emp, 404)
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestPurchaseFreeActivity(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(1, 0, "0")
	act := f.activity(t, 0, "2.50", true)

	res, err := f.activities.Purchase(context.Background(), emp, act)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.PointsBalance)
	assert.Equal(t, "2.50", res.CurrencyBalance.StringFixed(2))
}

func TestPurchaseReceiptFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(1, 50, "0")
	act := f.activity(t, 30, "5", true)

	f.store.FailOn("CreatePurchase", assert.AnError)
	_, err := f.activities.Purchase(context.Background(), emp, act)
	require.ErrorIs(t, err, assert.AnError)

	row := f.balances(t, emp)
	assert.Equal(t, int64(50), row.PointsBalance)
	assert.True(t, row.CurrencyBalance.IsZero())
	assert.Zero(t, f.store.PurchaseCount())
}

func TestPurchaseConcurrentNoDoubleSpend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 30, "0")
	act := f.activity(t, 10, "1", true)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.activities.Purchase(ctx, emp, act); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	row := f.balances(t, emp)
	assert.Equal(t, int64(0), row.PointsBalance)
	assert.True(t, row.CurrencyBalance.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 3, f.store.PurchaseCount())
}

func TestPointsConservation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.employee(1, 0, "0")
	cheap := f.activity(t, 7, "1", true)
	dear := f.activity(t, 20, "4", true)

	var awarded int64
	for _, reward := range []int64{15, 0, 40, 9} {
		proj := f.project(t, reward)
		_, err := f.projects.Join(ctx, proj, emp)
		require.NoError(t, err)
		_, err = f.projects.MarkDone(ctx, proj, emp)
		require.NoError(t, err)
		awarded += reward

		for _, act := range []int64{cheap, dear, cheap} {
			_, _ = f.activities.Purchase(ctx, emp, act)
		}
	}

	history, _, err := f.activities.PurchaseHistory(ctx, emp, domain.NewPage(1))
	require.NoError(t, err)
	var paid int64
	for _, p := range history {
		paid += p.PointsPaid
	}
	balance := f.balances(t, emp).PointsBalance
	assert.Equal(t, awarded-balance, paid)
	assert.GreaterOrEqual(t, balance, int64(0))
}

func TestActivityCatalog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := rowToNGO(f.store.AddNGO(901, "Blue Ocean"))
	empID := f.employee(1, 100, "0")
	emp, err := f.employees.GetByID(ctx, empID)
	require.NoError(t, err)

	active := f.activity(t, 10, "1", true)
	hidden := f.activity(t, 10, "1", false)

	_, err = f.activities.Purchase(ctx, empID, active)
	require.NoError(t, err)

	a, err := f.activities.View(ctx, domain.Principal{Employee: emp}, active)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.PurchaseCount)

	_, err = f.activities.View(ctx, domain.Principal{Employee: emp}, hidden)
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	_, err = f.activities.View(ctx, domain.Principal{NGO: &other}, active)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.activities.Update(ctx, other, active, domain.ActivityInput{Name: "x"})
	require.ErrorIs(t, err, domain.ErrForbidden)

	// no flag keeps the activity hidden
	renamed, err := f.activities.Update(ctx, f.ngo, hidden, domain.ActivityInput{
		Name:           "Still closed",
		PointsCost:     5,
		CurrencyPayout: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.False(t, renamed.Active)
	assert.Equal(t, "Still closed", renamed.Name)

	reopen := true
	updated, err := f.activities.Update(ctx, f.ngo, hidden, domain.ActivityInput{
		Name:           "Reopened",
		PointsCost:     5,
		CurrencyPayout: decimal.NewFromInt(2),
		Active:         &reopen,
	})
	require.NoError(t, err)
	assert.True(t, updated.Active)

	list, total, err := f.activities.ListActive(ctx, domain.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	count, err := f.activities.CountForNGO(ctx, f.ngo)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = f.activities.Create(ctx, f.ngo, domain.ActivityInput{Name: "bad", CurrencyPayout: decimal.NewFromInt(-1)})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "currency_payout")
}
