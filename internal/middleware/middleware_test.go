package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/domain"
)

func TestWindowLimiter(t *testing.T) {
	l := newWindowLimiter(2)
	now := time.Date(2025, 3, 1, 10, 0, 5, 0, time.UTC)

	_, ok := l.allow(1, now)
	assert.True(t, ok)
	_, ok = l.allow(1, now.Add(time.Second))
	assert.True(t, ok)
	count, ok := l.allow(1, now.Add(2*time.Second))
	assert.False(t, ok)
	assert.Equal(t, 3, count)

	// other chats have their own window
	_, ok = l.allow(2, now)
	assert.True(t, ok)

	// next minute starts over
	count, ok = l.allow(1, now.Add(time.Minute))
	assert.True(t, ok)
	assert.Equal(t, 1, count)
}

type finderFunc func(ctx context.Context, telegramID int64) (*domain.Employee, error)

func (f finderFunc) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Employee, error) {
	return f(ctx, telegramID)
}

func runLoader(t *testing.T, finder EmployeeFinder, update *models.Update) *domain.Employee {
	t.Helper()
	var got *domain.Employee
	called := false
	h := EmployeeLoader(finder)(func(ctx context.Context, _ *bot.Bot, _ *models.Update) {
		called = true
		got = GetEmployee(ctx)
	})
	h(context.Background(), nil, update)
	require.True(t, called)
	return got
}

func TestEmployeeLoader(t *testing.T) {
	finder := finderFunc(func(_ context.Context, telegramID int64) (*domain.Employee, error) {
		switch telegramID {
		case 42:
			return &domain.Employee{ID: 7, Name: "Ana"}, nil
		case 43:
			return nil, errors.New("db down")
		}
		return nil, domain.ErrEmployeeNotFound
	})

	msg := func(from int64) *models.Update {
		return &models.Update{Message: &models.Message{From: &models.User{ID: from}}}
	}

	emp := runLoader(t, finder, msg(42))
	require.NotNil(t, emp)
	assert.Equal(t, int64(7), emp.ID)

	assert.Nil(t, runLoader(t, finder, msg(1)))
	assert.Nil(t, runLoader(t, finder, msg(43)))

	cb := &models.Update{CallbackQuery: &models.CallbackQuery{From: models.User{ID: 42}}}
	require.NotNil(t, runLoader(t, finder, cb))

	assert.Nil(t, runLoader(t, finder, &models.Update{}))
}

type reported struct {
	errs  []error
	where []string
}

func (r *reported) LogError(err error, where string) {
	r.errs = append(r.errs, err)
	r.where = append(r.where, where)
}

func TestRecoverSwallowsPanic(t *testing.T) {
	rep := &reported{}
	h := Recover(rep)(func(context.Context, *bot.Bot, *models.Update) {
		panic("boom")
	})
	update := &models.Update{Message: &models.Message{Chat: models.Chat{ID: 9}, From: &models.User{ID: 9}}}
	assert.NotPanics(t, func() { h(context.Background(), nil, update) })

	require.Len(t, rep.errs, 1)
	assert.EqualError(t, rep.errs[0], "panic: boom")
	assert.Equal(t, "bot message from 9", rep.where[0])

	// no reporter still recovers
	h = Recover(nil)(func(context.Context, *bot.Bot, *models.Update) { panic("boom") })
	assert.NotPanics(t, func() { h(context.Background(), nil, update) })
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingRecordsEmployeeAndAction(t *testing.T) {
	buf := captureLogs(t)
	finder := finderFunc(func(context.Context, int64) (*domain.Employee, error) {
		return &domain.Employee{ID: 7, Name: "Ana"}, nil
	})
	h := EmployeeLoader(finder)(Logging()(func(context.Context, *bot.Bot, *models.Update) {}))

	h(context.Background(), nil, &models.Update{CallbackQuery: &models.CallbackQuery{
		From: models.User{ID: 42},
		Data: "done_12",
	}})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "bot action", rec["msg"])
	assert.Equal(t, float64(7), rec["employee_id"])
	assert.Equal(t, float64(42), rec["user_id"])
	assert.Equal(t, "done_12", rec["data"])
}

func TestLoggingPagingIsDebug(t *testing.T) {
	buf := captureLogs(t)
	h := Logging()(func(context.Context, *bot.Bot, *models.Update) {})

	h(context.Background(), nil, &models.Update{CallbackQuery: &models.CallbackQuery{
		From: models.User{ID: 42},
		Data: "projects_page_2",
	}})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "update processed", rec["msg"])
	assert.Equal(t, float64(0), rec["employee_id"])
}

type adminSet map[int64]bool

func (a adminSet) IsAdmin(id int64) bool { return a[id] }

func TestRateLimitSkipsAdmins(t *testing.T) {
	calls := 0
	h := RateLimit(adminSet{5: true})(func(context.Context, *bot.Bot, *models.Update) {
		calls++
	})

	update := &models.Update{Message: &models.Message{
		Chat: models.Chat{ID: 5},
		From: &models.User{ID: 5},
	}}
	for i := 0; i < 3*config.BotRateLimitPerMinute; i++ {
		h(context.Background(), nil, update)
	}
	assert.Equal(t, 3*config.BotRateLimitPerMinute, calls)

	// callbacks are never limited
	h(context.Background(), nil, &models.Update{CallbackQuery: &models.CallbackQuery{}})
	assert.Equal(t, 3*config.BotRateLimitPerMinute+1, calls)
}
