package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/o2ledger/internal/middleware"
	tg "github.com/set-night/o2ledger/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	emp := middleware.GetEmployee(ctx)
	if emp == nil {
		h.reply(ctx, b, chatID, fmt.Sprintf(
			"👋 Hi!\n\nThis bot tracks your volunteering XP and O2.\n\n"+
				"Your Telegram account is not linked yet. Give your administrator this id: `%d`",
			update.Message.From.ID,
		), nil)
		return
	}

	text := fmt.Sprintf(
		"👋 Hi, *%s*!\n\n"+
			"📋 *Commands:*\n"+
			"/me — Your balances and badge\n"+
			"/projects — Your projects\n"+
			"/join <id> — Join a project\n"+
			"/activities — Spend XP on activities\n"+
			"/top — Leaderboard",
		tg.EscapeMarkdown(emp.Name),
	)
	h.reply(ctx, b, chatID, text, nil)
}

// reply sends text with an optional inline keyboard.
func (h *Handler) reply(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	var markup models.ReplyMarkup
	if keyboard != nil {
		markup = keyboard
	}
	if err := tg.SendLongMessage(ctx, b, chatID, text, markup); err != nil {
		slog.Error("send message", "error", err, "chat_id", chatID)
	}
}

// edit replaces the text of a message the bot sent earlier.
func (h *Handler) edit(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, keyboard *models.InlineKeyboardMarkup) {
	var markup models.ReplyMarkup
	if keyboard != nil {
		markup = keyboard
	}
	if err := tg.EditLongMessage(ctx, b, chatID, messageID, text, markup); err != nil {
		slog.Error("edit message", "error", err, "chat_id", chatID, "message_id", messageID)
	}
}

// fail tells the user what went wrong and reports unexpected errors.
func (h *Handler) fail(ctx context.Context, b *bot.Bot, chatID int64, err error, where string) {
	msg, expected := userMessage(err)
	if !expected {
		slog.Error(where, "error", err, "chat_id", chatID)
		h.tgLogger.LogError(err, "bot: "+where)
	}
	h.reply(ctx, b, chatID, msg, nil)
}

// answer acknowledges a callback query, optionally showing text as a toast.
func answer(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
	})
}

// callbackMessage returns the chat and message the pressed button belongs to.
func callbackMessage(update *models.Update) (chatID int64, messageID int, ok bool) {
	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return 0, 0, false
	}
	return msg.Chat.ID, msg.ID, true
}

// requireEmployee returns the linked employee or tells the user to link first.
func (h *Handler) requireEmployee(ctx context.Context, b *bot.Bot, chatID int64) (int64, bool) {
	emp := middleware.GetEmployee(ctx)
	if emp == nil {
		h.reply(ctx, b, chatID, notLinkedText, nil)
		return 0, false
	}
	return emp.ID, true
}
