package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/o2ledger/internal/config"
)

// windowLimiter counts messages per chat in fixed one minute windows.
type windowLimiter struct {
	mu      sync.Mutex
	limit   int
	windows map[int64]window
}

type window struct {
	start time.Time
	count int
}

func newWindowLimiter(limit int) *windowLimiter {
	return &windowLimiter{limit: limit, windows: make(map[int64]window)}
}

// allow records a message and reports the count in the current window and
// whether it is within the limit.
func (l *windowLimiter) allow(chatID int64, now time.Time) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := now.Truncate(time.Minute)
	w := l.windows[chatID]
	if !w.start.Equal(start) {
		w = window{start: start}
	}
	w.count++
	l.windows[chatID] = w

	// drop stale windows
	if len(l.windows) > 1024 {
		for id, other := range l.windows {
			if other.start.Before(start) {
				delete(l.windows, id)
			}
		}
	}

	return w.count, w.count <= l.limit
}

// RateLimit returns middleware that enforces per-minute rate limits. Admins
// are not limited.
func RateLimit(cfg interface{ IsAdmin(int64) bool }) bot.Middleware {
	limiter := newWindowLimiter(config.BotRateLimitPerMinute)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit messages (not callbacks or other updates)
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if update.Message.From != nil && cfg.IsAdmin(update.Message.From.ID) {
				next(ctx, b, update)
				return
			}

			count, ok := limiter.allow(chatID, time.Now())
			if !ok {
				slog.Debug("rate limited", "chat_id", chatID, "count", count, "limit", limiter.limit)
				if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many requests. Please wait a minute.",
				}); err != nil {
					slog.Error("failed to send rate limit notice", "error", err, "chat_id", chatID)
				}
				return
			}

			next(ctx, b, update)
		}
	}
}
