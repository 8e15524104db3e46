package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ErrorReporter mirrors failures to an operator channel.
type ErrorReporter interface {
	LogError(err error, context string)
}

// ReporterFunc adapts a function to ErrorReporter.
type ReporterFunc func(err error, context string)

func (f ReporterFunc) LogError(err error, context string) { f(err, context) }

// Recover returns middleware that recovers from panics. The panic is
// reported and the user is told the action failed.
func Recover(reporter ErrorReporter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				info := describe(update)
				slog.Error("panic recovered in handler",
					"panic", r,
					"type", info.kind,
					"user_id", info.userID,
					"data", info.data,
					"stack", string(debug.Stack()),
				)
				if reporter != nil {
					reporter.LogError(fmt.Errorf("panic: %v", r), fmt.Sprintf("bot %s from %d", info.kind, info.userID))
				}
				if b != nil && info.chatID != 0 {
					if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
						ChatID: info.chatID,
						Text:   "⚠️ Something went wrong. Please try again later.",
					}); err != nil {
						slog.Error("failed to send panic notice", "error", err, "chat_id", info.chatID)
					}
				}
			}()
			next(ctx, b, update)
		}
	}
}
