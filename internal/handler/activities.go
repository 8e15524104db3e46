package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/middleware"
	tg "github.com/set-night/o2ledger/internal/telegram"
)

func (h *Handler) handleActivities(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if _, ok := h.requireEmployee(ctx, b, chatID); !ok {
		return
	}
	h.sendActivitiesPage(ctx, b, chatID, 1, 0)
}

func (h *Handler) handleActivitiesPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	answer(ctx, b, update, "")

	chatID, messageID, ok := callbackMessage(update)
	if !ok {
		return
	}
	if _, ok := h.requireEmployee(ctx, b, chatID); !ok {
		return
	}
	h.sendActivitiesPage(ctx, b, chatID, parsePage(update.CallbackQuery.Data, activitiesPagePrefix), messageID)
}

func (h *Handler) sendActivitiesPage(ctx context.Context, b *bot.Bot, chatID int64, page, messageID int) {
	emp := middleware.GetEmployee(ctx)

	// fresh balance, the one loaded by middleware may predate a purchase
	current, err := h.employees.GetByID(ctx, emp.ID)
	if err != nil {
		h.fail(ctx, b, chatID, err, "get employee")
		return
	}

	p := domain.Page{Number: page, Size: config.BotPageSize}
	activities, total, err := h.activities.ListActive(ctx, p)
	if err != nil {
		h.fail(ctx, b, chatID, err, "list activities")
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, a := range activities {
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton(fmt.Sprintf("🛒 %s (%d XP)", a.Name, a.PointsCost), fmt.Sprintf("buy_%d", a.ID)),
		))
	}
	if row := tg.PaginationRow(page, tg.TotalPages(total, config.BotPageSize), activitiesPagePrefix); row != nil {
		rows = append(rows, row)
	}

	var keyboard *models.InlineKeyboardMarkup
	if len(rows) > 0 {
		keyboard = tg.InlineKeyboard(rows...)
	}

	text := formatActivities(activities, total, current.Points)
	if messageID != 0 {
		h.edit(ctx, b, chatID, messageID, text, keyboard)
		return
	}
	h.reply(ctx, b, chatID, text, keyboard)
}

// handleBuy purchases the activity and sends the receipt.
func (h *Handler) handleBuy(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	chatID, _, ok := callbackMessage(update)
	if !ok {
		answer(ctx, b, update, "")
		return
	}

	emp := middleware.GetEmployee(ctx)
	if emp == nil {
		answer(ctx, b, update, "")
		h.reply(ctx, b, chatID, notLinkedText, nil)
		return
	}

	activityID, err := parseID(update.CallbackQuery.Data, "buy_")
	if err != nil {
		answer(ctx, b, update, "")
		return
	}

	activity, err := h.activities.Get(ctx, activityID)
	if err != nil {
		answer(ctx, b, update, "")
		h.fail(ctx, b, chatID, err, "get activity")
		return
	}

	res, err := h.activities.Purchase(ctx, emp.ID, activityID)
	if err != nil {
		answer(ctx, b, update, "")
		h.fail(ctx, b, chatID, err, "purchase")
		return
	}

	answer(ctx, b, update, "🎉")
	h.reply(ctx, b, chatID, formatPurchase(res, activity.Name), nil)
}
