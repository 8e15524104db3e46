package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/o2ledger/internal/domain"
)

type ctxKey string

const EmployeeKey ctxKey = "employee"

// EmployeeFinder resolves a chat user to a linked employee.
type EmployeeFinder interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Employee, error)
}

// GetEmployee extracts the linked employee from context. It is nil when the
// chat user is not linked.
func GetEmployee(ctx context.Context) *domain.Employee {
	e, ok := ctx.Value(EmployeeKey).(*domain.Employee)
	if !ok {
		return nil
	}
	return e
}

// WithEmployee stores the employee in context.
func WithEmployee(ctx context.Context, e *domain.Employee) context.Context {
	return context.WithValue(ctx, EmployeeKey, e)
}

// EmployeeLoader returns middleware that loads the employee linked to the
// sender into context.
func EmployeeLoader(employees EmployeeFinder) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from != nil {
				emp, err := employees.GetByTelegramID(ctx, from.ID)
				switch {
				case err == nil:
					ctx = WithEmployee(ctx, emp)
				case !errors.Is(err, domain.ErrEmployeeNotFound):
					slog.Error("failed to load employee", "error", err, "user_id", from.ID)
				}
			}

			next(ctx, b, update)
		}
	}
}
