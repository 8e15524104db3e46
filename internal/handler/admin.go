package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/o2ledger/internal/service"
	tg "github.com/set-night/o2ledger/internal/telegram"
)

// handleLink lets an admin link an employee to a Telegram user:
// /link <employee id> <telegram id>
func (h *Handler) handleLink(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if !h.cfg.IsAdmin(update.Message.From.ID) {
		return
	}
	chatID := update.Message.Chat.ID

	employeeID, telegramID, err := parseLinkArgs(update.Message.Text)
	if err != nil {
		h.reply(ctx, b, chatID, "Usage: /link <employee id> <telegram id>", nil)
		return
	}

	emp, err := h.employees.LinkTelegram(ctx, employeeID, telegramID)
	if errors.Is(err, service.ErrTelegramLinked) {
		h.reply(ctx, b, chatID, "❌ This Telegram user is already linked to another employee.", nil)
		return
	}
	if err != nil {
		h.fail(ctx, b, chatID, err, "link telegram")
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf("✅ *%s* (#%d) is now linked to `%d`.",
		tg.EscapeMarkdown(emp.Name), emp.ID, telegramID), nil)
}

func parseLinkArgs(text string) (employeeID, telegramID int64, err error) {
	fields := strings.Fields(strings.TrimPrefix(text, "/link"))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want 2 arguments, got %d", len(fields))
	}
	if employeeID, err = parseID(fields[0], ""); err != nil {
		return 0, 0, err
	}
	if telegramID, err = parseID(fields[1], ""); err != nil {
		return 0, 0, err
	}
	return employeeID, telegramID, nil
}
