package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// callbacks that move points and are logged at info level
var actionPrefixes = []string{"join_", "done_", "buy_"}

// Logging returns middleware that logs update processing time. It runs after
// EmployeeLoader so the linked employee is part of the record.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			info := describe(update)

			var employeeID int64
			if emp := GetEmployee(ctx); emp != nil {
				employeeID = emp.ID
			}

			next(ctx, b, update)

			level, msg := slog.LevelDebug, "update processed"
			if isAction(info.data) {
				level, msg = slog.LevelInfo, "bot action"
			}
			slog.Log(ctx, level, msg,
				"type", info.kind,
				"chat_id", info.chatID,
				"user_id", info.userID,
				"employee_id", employeeID,
				"data", info.data,
				"duration", time.Since(start),
			)
		}
	}
}

func isAction(data string) bool {
	for _, p := range actionPrefixes {
		if strings.HasPrefix(data, p) {
			return true
		}
	}
	return false
}
