package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	projectsPagePrefix   = "projects_page"
	activitiesPagePrefix = "activities_page"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/me", bot.MatchTypePrefix, h.handleMe)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/top", bot.MatchTypePrefix, h.handleTop)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/projects", bot.MatchTypePrefix, h.handleProjects)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/join", bot.MatchTypePrefix, h.handleJoin)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/activities", bot.MatchTypePrefix, h.handleActivities)

	// Admin commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/link", bot.MatchTypePrefix, h.handleLink)

	// Project callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "join_", bot.MatchTypePrefix, h.handleJoinCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "done_", bot.MatchTypePrefix, h.handleDone)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, projectsPagePrefix+"_", bot.MatchTypePrefix, h.handleProjectsPage)

	// Activity callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "buy_", bot.MatchTypePrefix, h.handleBuy)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, activitiesPagePrefix+"_", bot.MatchTypePrefix, h.handleActivitiesPage)

	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cur", bot.MatchTypeExact, h.handleNoop)
}

// handleNoop is a no-op callback handler used for pagination indicators and other
// non-interactive inline buttons. It simply acknowledges the callback query.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
