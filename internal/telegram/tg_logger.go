package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/domain"
)

// MessageSender is the part of *bot.Bot the log mirror needs.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramLogger mirrors notable events into topics of a log chat. It is a
// no-op when the chat or the event's topic is not configured.
type TelegramLogger struct {
	bot MessageSender
	cfg *config.Config
}

func NewTelegramLogger(b MessageSender, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{bot: b, cfg: cfg}
}

type LogType string

const (
	LogTypeError      LogType = "error"
	LogTypeCompletion LogType = "completion"
	LogTypePurchase   LogType = "purchase"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l == nil || l.bot == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.getTopicID(logType)
	if topicID == 0 {
		return
	}

	// Truncate if too long
	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		ParseMode:       models.ParseModeMarkdownV1,
		MessageThreadID: topicID,
	}
	if _, err := l.bot.SendMessage(ctx, params); err != nil {
		// Fallback to plain text
		params.ParseMode = ""
		if _, err = l.bot.SendMessage(ctx, params); err != nil {
			slog.Error("failed to send telegram log", "type", logType, "error", err)
		}
	}
}

func (l *TelegramLogger) LogError(err error, context string) {
	// code spans cannot hold a backtick, so the error is escaped text
	msg := fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* %s\n*Time:* %s",
		EscapeMarkdown(context), EscapeMarkdown(err.Error()), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeError, msg)
}

func (l *TelegramLogger) ProjectCompleted(_ context.Context, e domain.Employee, p domain.Project, res domain.CompletionResult) {
	msg := fmt.Sprintf("🌱 *Project Completed*\n\n*Employee:* %s (`%d`)\n*Project:* %s (`%d`)\n*Awarded:* %d XP\n*Balance:* %d XP",
		EscapeMarkdown(e.Name), e.ID, EscapeMarkdown(p.Name), p.ID, res.PointsAwarded, res.PointsBalance)
	l.Log(LogTypeCompletion, msg)
}

func (l *TelegramLogger) ActivityPurchased(_ context.Context, e domain.Employee, a domain.Activity, res domain.PurchaseResult) {
	msg := fmt.Sprintf("🛒 *Activity Purchased*\n\n*Employee:* %s (`%d`)\n*Activity:* %s (`%d`)\n*Paid:* %d XP\n*Received:* %s O2\n*Receipt:* `%s`",
		EscapeMarkdown(e.Name), e.ID, EscapeMarkdown(a.Name), a.ID,
		res.Purchase.PointsPaid, res.Purchase.CurrencyReceived.StringFixed(2), res.Purchase.Receipt)
	l.Log(LogTypePurchase, msg)
}

func (l *TelegramLogger) getTopicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeCompletion:
		return l.cfg.LogTopicCompletion
	case LogTypePurchase:
		return l.cfg.LogTopicPurchase
	default:
		return 0
	}
}
