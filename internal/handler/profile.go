package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/o2ledger/internal/config"
)

func (h *Handler) handleMe(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	employeeID, ok := h.requireEmployee(ctx, b, chatID)
	if !ok {
		return
	}

	profile, err := h.employees.Profile(ctx, employeeID)
	if err != nil {
		h.fail(ctx, b, chatID, err, "profile")
		return
	}
	h.reply(ctx, b, chatID, formatProfile(profile), nil)
}

func (h *Handler) handleTop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	employeeID, ok := h.requireEmployee(ctx, b, chatID)
	if !ok {
		return
	}

	top, err := h.leaderboard.Top(ctx, config.LeaderboardTopN)
	if err != nil {
		h.fail(ctx, b, chatID, err, "leaderboard")
		return
	}
	h.reply(ctx, b, chatID, formatLeaderboard(top, employeeID), nil)
}
